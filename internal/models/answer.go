package models

import "time"

type Answer struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	AuthorID   int       `gorm:"index;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	QuestionID int       `gorm:"index;not null" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
