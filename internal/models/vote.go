package models

import "time"

// VoteType is the direction of a vote.
type VoteType string

const (
	Upvote   VoteType = "upvote"
	Downvote VoteType = "downvote"
)

func (v VoteType) Valid() bool {
	return v == Upvote || v == Downvote
}

// VoteState is what a user's vote on a target looks like after a change.
type VoteState string

const (
	VoteNone     VoteState = "none"
	VoteUpvote   VoteState = VoteState(Upvote)
	VoteDownvote VoteState = VoteState(Downvote)
)

// Vote model - one row per author and target
type Vote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	AuthorID   int       `gorm:"not null;uniqueIndex:idx_vote_author_target" json:"author_id"`
	ActionID   int       `gorm:"not null;uniqueIndex:idx_vote_author_target;index:idx_vote_target" json:"action_id"`
	ActionType string    `gorm:"size:16;not null;uniqueIndex:idx_vote_author_target;index:idx_vote_target" json:"action_type"`
	VoteType   VoteType  `gorm:"size:16;not null" json:"vote_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
