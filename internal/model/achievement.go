package model

import (
	"time"
)

// Badge kinds. The evaluator's predicate table in service keys on these.
const (
	BadgeFirstLesson   = "first_lesson"
	BadgeXP100         = "xp_100"
	BadgeXP500         = "xp_500"
	BadgeXP1000        = "xp_1000"
	BadgeStreak3       = "streak_3"
	BadgeStreak7       = "streak_7"
	BadgeStreak30      = "streak_30"
	BadgePerfectLesson = "perfect_lesson"
	BadgeFirstSpeaking = "first_speaking"
)

// Achievement is awarded at most once per user and is permanent.
type Achievement struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeType string    `json:"badge_type" gorm:"not null;uniqueIndex:idx_user_badge"`
	EarnedAt  time.Time `json:"earned_at" gorm:"not null"`
}
