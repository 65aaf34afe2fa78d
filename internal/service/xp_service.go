package service

import (
	"time"

	"github.com/lshigami/Lingora/config"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
)

// XPService is the single source of truth for XP awards, level thresholds
// and streak arithmetic. All methods are pure; persistence is the caller's
// concern.
type XPService interface {
	CalculateLessonXP(correct, total, currentStreak int, activityKind string) dto.XPBreakdown
	CalculateSpeakingXP(fluency, grammar, vocabulary float64, durationSeconds int) int
	LevelFromXP(totalXP int) model.CEFRLevel
	CheckLevelUp(oldXP, newXP int) (bool, model.CEFRLevel, model.CEFRLevel)
	XPToNextLevel(currentXP int) XPProgress
	// NextStreak returns the streak value after an activity at now, given
	// the previous streak and the date of the last recorded activity.
	NextStreak(currentStreak int, lastActivity *time.Time, now time.Time) int
}

// XPProgress reports where a user sits between two level thresholds.
type XPProgress struct {
	CurrentLevel    model.CEFRLevel `json:"current_level"`
	NextLevel       *model.CEFRLevel `json:"next_level,omitempty"` // nil at C2
	XPNeeded        int             `json:"xp_needed"`
	ProgressPercent float64         `json:"progress_percent"`
}

type xpService struct {
	cfg config.XP
}

func NewXPService(cfg *config.Config) XPService {
	return &xpService{cfg: cfg.XP}
}

func (s *xpService) CalculateLessonXP(correct, total, currentStreak int, activityKind string) dto.XPBreakdown {
	b := dto.XPBreakdown{Base: correct * s.cfg.PerCorrectAnswer}

	// Completion bonus requires at least 60% correct. Unrecognized activity
	// kinds earn no bonus rather than failing.
	if total > 0 && float64(correct)/float64(total) >= 0.60 {
		switch activityKind {
		case model.LessonTypeDaily:
			b.CompletionBonus = s.cfg.DailyLessonComplete
		case model.LessonTypeGrammarSprint:
			b.CompletionBonus = s.cfg.GrammarSprintComplete
		case model.LessonTypeWordSprint:
			b.CompletionBonus = s.cfg.WordSprintComplete
		}
	}

	b.StreakBonus = currentStreak * s.cfg.StreakBonusPerDay
	if b.StreakBonus > s.cfg.StreakBonusCap {
		b.StreakBonus = s.cfg.StreakBonusCap
	}

	if total > 0 && correct == total {
		b.PerfectBonus = s.cfg.PerfectBonus
	}

	b.Total = b.Base + b.CompletionBonus + b.StreakBonus + b.PerfectBonus
	return b
}

func (s *xpService) CalculateSpeakingXP(fluency, grammar, vocabulary float64, durationSeconds int) int {
	avg := (fluency + grammar + vocabulary) / 3.0
	scoreXP := int(avg * 0.4)

	durationXP := durationSeconds / 30
	if durationXP > 20 {
		durationXP = 20
	}

	return scoreXP + durationXP + s.cfg.SpeakingSession
}

func (s *xpService) LevelFromXP(totalXP int) model.CEFRLevel {
	level := model.CEFRLevels[0]
	for i, threshold := range s.cfg.LevelThresholds {
		if totalXP >= threshold {
			level = model.CEFRLevels[i]
		}
	}
	return level
}

func (s *xpService) CheckLevelUp(oldXP, newXP int) (bool, model.CEFRLevel, model.CEFRLevel) {
	oldLevel := s.LevelFromXP(oldXP)
	newLevel := s.LevelFromXP(newXP)
	return oldLevel != newLevel, oldLevel, newLevel
}

func (s *xpService) XPToNextLevel(currentXP int) XPProgress {
	current := s.LevelFromXP(currentXP)
	idx := current.Index()

	if idx >= len(s.cfg.LevelThresholds)-1 {
		return XPProgress{CurrentLevel: current, XPNeeded: 0, ProgressPercent: 100}
	}

	next := model.CEFRLevels[idx+1]
	floor := s.cfg.LevelThresholds[idx]
	ceiling := s.cfg.LevelThresholds[idx+1]

	progress := float64(currentXP-floor) / float64(ceiling-floor) * 100
	return XPProgress{
		CurrentLevel:    current,
		NextLevel:       &next,
		XPNeeded:        ceiling - currentXP,
		ProgressPercent: progress,
	}
}

func (s *xpService) NextStreak(currentStreak int, lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil {
		return 1
	}

	today := truncateToDay(now)
	lastDay := truncateToDay(*lastActivity)

	switch {
	case lastDay.Equal(today):
		// Already active today; the streak does not change.
		if currentStreak < 1 {
			return 1
		}
		return currentStreak
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return currentStreak + 1
	default:
		return 1
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
