package model

import (
	"time"
)

// VocabularyEntry is one word on a learner's personal review list. Entries
// are fed by missed vocabulary questions and by explicit adds; a correct
// streak of study ends with the learner marking the word mastered.
type VocabularyEntry struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_word"`
	Word         string    `json:"word" gorm:"not null;uniqueIndex:idx_user_word"`
	Meaning      string    `json:"meaning"`
	Context      string    `json:"context"` // the prompt the word was missed in
	MistakeCount int       `json:"mistake_count" gorm:"not null;default:0"`
	Mastered     bool      `json:"mastered" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
