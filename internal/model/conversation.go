package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SessionTypeRoleplay = "roleplay"
	SessionTypeFreeTalk = "freetalk"
)

// ConversationMessage is one turn in a speaking session transcript.
type ConversationMessage struct {
	IsAI      bool      `json:"is_ai"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionScores accumulates per-turn speech scores for a session.
type SessionScores struct {
	Fluency    []float64 `json:"fluency"`
	Grammar    []float64 `json:"grammar"`
	Vocabulary []float64 `json:"vocabulary"`
}

type ConversationSession struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	SessionType string         `json:"session_type" gorm:"not null"`
	Messages    datatypes.JSON `json:"messages"` // serialized []ConversationMessage
	Scores      datatypes.JSON `json:"scores"`   // serialized SessionScores
	CompletedAt *time.Time     `json:"completed_at"` // set once; XP is awarded exactly then
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
