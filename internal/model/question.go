package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types mirror what the frontend can render.
const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeGapFill     = "gap_fill"
	QuestionTypeMatching    = "matching"
	QuestionTypeTranslation = "translation"
	QuestionTypeListening   = "listening"
	QuestionTypeReorder     = "reorder"
	QuestionTypeTrueFalse   = "true_false"
)

// Skill tags used for performance aggregation.
const (
	SkillGrammar       = "grammar"
	SkillVocabulary    = "vocabulary"
	SkillListening     = "listening"
	SkillReading       = "reading"
	SkillPronunciation = "pronunciation"
	SkillSpeaking      = "speaking"
	SkillGeneral       = "general"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	LessonID      uint           `json:"lesson_id" gorm:"not null;index"`
	Type          string         `json:"type" gorm:"not null"`
	Content       datatypes.JSON `json:"content" gorm:"not null"` // prompt, options, etc.
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`
	SkillTag      string         `json:"skill_tag" gorm:"not null;index"`
	Difficulty    int            `json:"difficulty" gorm:"not null;default:1"` // 1..5
	XPValue       int            `json:"xp_value" gorm:"not null;default:10"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
