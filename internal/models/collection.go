package models

import "time"

// Collection is a question saved by a user. At most one row exists per pair.
type Collection struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	AuthorID   int       `gorm:"not null;uniqueIndex:idx_collection_author_question" json:"author_id"`
	QuestionID int       `gorm:"not null;uniqueIndex:idx_collection_author_question;index" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"question"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
