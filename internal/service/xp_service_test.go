package service

import (
	"testing"
	"time"

	"github.com/lshigami/Lingora/config"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		XP: config.XP{
			PerCorrectAnswer:      10,
			DailyLessonComplete:   50,
			GrammarSprintComplete: 30,
			WordSprintComplete:    25,
			SpeakingSession:       40,
			StreakBonusPerDay:     5,
			StreakBonusCap:        50,
			PerfectBonus:          25,
			LevelThresholds:       []int{0, 5000, 10000, 15000, 20000, 25000},
		},
	}
}

func TestCalculateLessonXP(t *testing.T) {
	svc := NewXPService(testConfig())

	tests := []struct {
		name          string
		correct       int
		total         int
		streak        int
		kind          string
		wantBase      int
		wantComplete  int
		wantStreak    int
		wantPerfect   int
		wantTotal     int
	}{
		{
			name:    "daily lesson above completion threshold",
			correct: 8, total: 10, streak: 4, kind: model.LessonTypeDaily,
			wantBase: 80, wantComplete: 50, wantStreak: 20, wantPerfect: 0, wantTotal: 150,
		},
		{
			name:    "perfect daily lesson",
			correct: 10, total: 10, streak: 0, kind: model.LessonTypeDaily,
			wantBase: 100, wantComplete: 50, wantStreak: 0, wantPerfect: 25, wantTotal: 175,
		},
		{
			name:    "below sixty percent earns no completion bonus",
			correct: 5, total: 10, streak: 2, kind: model.LessonTypeDaily,
			wantBase: 50, wantComplete: 0, wantStreak: 10, wantPerfect: 0, wantTotal: 60,
		},
		{
			name:    "grammar sprint bonus",
			correct: 7, total: 10, streak: 0, kind: model.LessonTypeGrammarSprint,
			wantBase: 70, wantComplete: 30, wantStreak: 0, wantPerfect: 0, wantTotal: 100,
		},
		{
			name:    "word sprint bonus",
			correct: 9, total: 10, streak: 0, kind: model.LessonTypeWordSprint,
			wantBase: 90, wantComplete: 25, wantStreak: 0, wantPerfect: 0, wantTotal: 115,
		},
		{
			name:    "unrecognized kind earns no completion bonus",
			correct: 10, total: 10, streak: 0, kind: "karaoke",
			wantBase: 100, wantComplete: 0, wantStreak: 0, wantPerfect: 25, wantTotal: 125,
		},
		{
			name:    "streak bonus caps at fifty",
			correct: 6, total: 10, streak: 20, kind: model.LessonTypeDaily,
			wantBase: 60, wantComplete: 50, wantStreak: 50, wantPerfect: 0, wantTotal: 160,
		},
		{
			name:    "empty batch",
			correct: 0, total: 0, streak: 0, kind: model.LessonTypeDaily,
			wantBase: 0, wantComplete: 0, wantStreak: 0, wantPerfect: 0, wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CalculateLessonXP(tt.correct, tt.total, tt.streak, tt.kind)
			assert.Equal(t, tt.wantBase, got.Base)
			assert.Equal(t, tt.wantComplete, got.CompletionBonus)
			assert.Equal(t, tt.wantStreak, got.StreakBonus)
			assert.Equal(t, tt.wantPerfect, got.PerfectBonus)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, got.Base+got.CompletionBonus+got.StreakBonus+got.PerfectBonus, got.Total)
		})
	}
}

func TestCalculateSpeakingXP(t *testing.T) {
	svc := NewXPService(testConfig())

	t.Run("includes score, duration and session constant", func(t *testing.T) {
		// avg 80 -> 32, 120s -> 4, session -> 40
		assert.Equal(t, 76, svc.CalculateSpeakingXP(80, 80, 80, 120))
	})
	t.Run("duration bonus caps at twenty", func(t *testing.T) {
		assert.Equal(t, 60, svc.CalculateSpeakingXP(0, 0, 0, 100000))
	})
	t.Run("never below the session constant", func(t *testing.T) {
		assert.Equal(t, 40, svc.CalculateSpeakingXP(0, 0, 0, 0))
	})
}

func TestLevelFromXP(t *testing.T) {
	svc := NewXPService(testConfig())

	tests := []struct {
		xp   int
		want model.CEFRLevel
	}{
		{0, model.LevelA1},
		{4999, model.LevelA1},
		{5000, model.LevelA2},
		{5001, model.LevelA2},
		{9999, model.LevelA2},
		{10000, model.LevelB1},
		{24999, model.LevelC1},
		{25000, model.LevelC2},
		{1000000, model.LevelC2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.LevelFromXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestCheckLevelUp(t *testing.T) {
	svc := NewXPService(testConfig())

	t.Run("crossing a threshold", func(t *testing.T) {
		up, oldLevel, newLevel := svc.CheckLevelUp(4999, 5001)
		assert.True(t, up)
		assert.Equal(t, model.LevelA1, oldLevel)
		assert.Equal(t, model.LevelA2, newLevel)
	})
	t.Run("staying within a band", func(t *testing.T) {
		up, _, _ := svc.CheckLevelUp(5000, 9999)
		assert.False(t, up)
	})
	t.Run("any level change is reported", func(t *testing.T) {
		up, oldLevel, newLevel := svc.CheckLevelUp(5001, 4999)
		assert.True(t, up)
		assert.Equal(t, model.LevelA2, oldLevel)
		assert.Equal(t, model.LevelA1, newLevel)
	})
}

func TestXPToNextLevel(t *testing.T) {
	svc := NewXPService(testConfig())

	t.Run("mid band", func(t *testing.T) {
		p := svc.XPToNextLevel(2500)
		assert.Equal(t, model.LevelA1, p.CurrentLevel)
		if assert.NotNil(t, p.NextLevel) {
			assert.Equal(t, model.LevelA2, *p.NextLevel)
		}
		assert.Equal(t, 2500, p.XPNeeded)
		assert.InDelta(t, 50.0, p.ProgressPercent, 0.001)
	})
	t.Run("at max level", func(t *testing.T) {
		p := svc.XPToNextLevel(30000)
		assert.Equal(t, model.LevelC2, p.CurrentLevel)
		assert.Nil(t, p.NextLevel)
		assert.Equal(t, 0, p.XPNeeded)
		assert.Equal(t, 100.0, p.ProgressPercent)
	})
}

func TestNextStreak(t *testing.T) {
	svc := NewXPService(testConfig())
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("first ever activity", func(t *testing.T) {
		assert.Equal(t, 1, svc.NextStreak(0, nil, now))
	})
	t.Run("second activity same day keeps the streak", func(t *testing.T) {
		earlier := now.Add(-3 * time.Hour)
		assert.Equal(t, 4, svc.NextStreak(4, &earlier, now))
	})
	t.Run("same day never reports zero", func(t *testing.T) {
		earlier := now.Add(-1 * time.Hour)
		assert.Equal(t, 1, svc.NextStreak(0, &earlier, now))
	})
	t.Run("consecutive day increments", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		assert.Equal(t, 5, svc.NextStreak(4, &yesterday, now))
	})
	t.Run("gap resets to one", func(t *testing.T) {
		lastWeek := now.AddDate(0, 0, -6)
		assert.Equal(t, 1, svc.NextStreak(12, &lastWeek, now))
	})
}
