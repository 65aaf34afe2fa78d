package model

import (
	"time"

	"gorm.io/datatypes"
)

// StudyPlan is a learner's scheduling preferences, one row per user. Reads
// fall back to defaults when no row exists yet.
type StudyPlan struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	UserID               uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	DailyGoalMinutes     int            `json:"daily_goal_minutes" gorm:"not null;default:15"`
	StudyDays            datatypes.JSON `json:"study_days"` // serialized []string of weekday names
	NotificationsEnabled bool           `json:"notifications_enabled" gorm:"not null;default:true"`
	ReminderTime         string         `json:"reminder_time"` // "HH:MM", empty means unset
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}
