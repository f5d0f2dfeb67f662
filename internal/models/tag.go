package models

import "time"

type Tag struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TagQuestion links a Tag to a Question. At most one row exists per pair.
type TagQuestion struct {
	TagID      int       `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	QuestionID int       `gorm:"primaryKey;autoIncrement:false;index" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TagCount is a tag together with how many questions carry it.
type TagCount struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Questions int64  `json:"questions"`
}
