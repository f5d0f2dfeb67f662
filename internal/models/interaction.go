package models

import "time"

// Interaction actions recorded by the service.
const (
	ActionView     = "view"
	ActionAsk      = "ask"
	ActionAnswer   = "answer"
	ActionUpvote   = "upvote"
	ActionDownvote = "downvote"
	ActionBookmark = "bookmark"
	ActionDelete   = "delete"
)

// Interaction is an append-only record of something a user did to a target.
// It feeds recommendations and is never used to derive vote state.
type Interaction struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;index" json:"user_id"`
	Action     string    `gorm:"size:32;not null" json:"action"`
	ActionID   int       `gorm:"not null;index:idx_interaction_target" json:"action_id"`
	ActionType string    `gorm:"size:16;not null;index:idx_interaction_target" json:"action_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Target returns the question or answer the interaction refers to.
func (i Interaction) Target() (Target, error) {
	return ParseTarget(i.ActionType, i.ActionID)
}
