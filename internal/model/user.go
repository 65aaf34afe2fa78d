package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Email         string         `json:"email" gorm:"not null;uniqueIndex"`
	Name          string         `json:"name" gorm:"not null"`
	CEFRLevel     *CEFRLevel     `json:"cefr_level,omitempty" gorm:"type:varchar(2)"` // unset until placement
	XPTotal       int            `json:"xp_total" gorm:"not null;default:0"`
	CurrentStreak int            `json:"current_streak" gorm:"not null;default:0"`
	LongestStreak int            `json:"longest_streak" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
