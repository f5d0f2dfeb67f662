package models

import "time"

type Question struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  int       `gorm:"index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Tags      []Tag     `gorm:"many2many:tag_questions;joinForeignKey:QuestionID;joinReferences:TagID" json:"tags"`
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionDraft is what the ask-question form submits.
type QuestionDraft struct {
	Title   string   `json:"title" binding:"required,min=5,max=100"`
	Content string   `json:"content" binding:"required,min=1"`
	Tags    []string `json:"tags" binding:"required"`
}
