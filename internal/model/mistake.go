package model

import (
	"time"
)

// Mistake marks an outstanding incorrect answer for a (user, question) pair.
// Re-answering the question incorrectly bumps MissCount and refreshes
// UpdatedAt instead of inserting a second row; answering it correctly during
// review deletes it.
type Mistake struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_user_question"`
	SourceType string    `json:"source_type" gorm:"not null"` // lesson type that produced it
	MissCount  int       `json:"miss_count" gorm:"not null;default:1"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
