package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerResult is one scored answer embedded in a ProgressRecord. The
// serialized slice is the substrate for skill statistics and review sourcing.
type AnswerResult struct {
	QuestionID uint   `json:"question_id"`
	IsCorrect  bool   `json:"is_correct"`
	SkillTag   string `json:"skill_tag"`
}

// ProgressRecord is an append-only fact created once per completed activity.
// It is never updated.
type ProgressRecord struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	LessonID         uint           `json:"lesson_id" gorm:"not null;index"`
	Score            int            `json:"score" gorm:"not null"` // 0..100
	XPEarned         int            `json:"xp_earned" gorm:"not null"`
	Answers          datatypes.JSON `json:"answers"` // serialized []AnswerResult
	CompletedAt      time.Time      `json:"completed_at" gorm:"not null;index"`
	TimeSpentSeconds int            `json:"time_spent_seconds" gorm:"not null;default:0"`
	CreatedAt        time.Time      `json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
