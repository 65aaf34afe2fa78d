package model

import (
	"time"

	"gorm.io/gorm"
)

// Lesson types. Placement and transition lessons are test batteries;
// the rest award XP through the lesson submission pipeline.
const (
	LessonTypeDaily         = "daily"
	LessonTypeGrammarSprint = "grammar_sprint"
	LessonTypeWordSprint    = "word_sprint"
	LessonTypePlacement     = "placement"
	LessonTypeTransition    = "transition"
	LessonTypeReview        = "review"
)

type Lesson struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	PackID      *uint          `json:"pack_id,omitempty" gorm:"index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type" gorm:"not null;index"`
	CEFRLevel   CEFRLevel      `json:"cefr_level" gorm:"type:varchar(2);index"`
	XPReward    int            `json:"xp_reward" gorm:"not null;default:50"`
	OrderIndex  int            `json:"order_index" gorm:"not null;default:0"`
	Questions   []Question     `json:"questions,omitempty" gorm:"foreignKey:LessonID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type LessonPack struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null;uniqueIndex"`
	Description string         `json:"description,omitempty"`
	CEFRLevel   CEFRLevel      `json:"cefr_level" gorm:"type:varchar(2);not null"`
	OrderIndex  int            `json:"order_index" gorm:"not null;default:0"`
	Icon        string         `json:"icon,omitempty"`
	Lessons     []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:PackID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
