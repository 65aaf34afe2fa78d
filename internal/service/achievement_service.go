package service

import (
	"fmt"
	"time"

	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UserStats is the snapshot an achievement predicate sees.
type UserStats struct {
	XPTotal          int
	CurrentStreak    int
	LessonsCompleted int64
	SpeakingSessions int64
}

// ActivityEvent describes the activity that just completed.
type ActivityEvent struct {
	Kind    string // lesson type, "review" or "speaking"
	Score   int
	Perfect bool
}

// BadgeDefinition is the display metadata for one badge kind.
type BadgeDefinition struct {
	Kind        string
	Title       string
	Description string
	Icon        string
}

type badgeRule struct {
	BadgeDefinition
	qualifies func(stats UserStats, activity ActivityEvent) bool
}

// badgeRules is evaluated in order; adding a badge means adding a row here,
// call sites stay untouched.
var badgeRules = []badgeRule{
	{
		BadgeDefinition{model.BadgeFirstLesson, "First Steps", "Complete your first lesson", "🎯"},
		func(s UserStats, a ActivityEvent) bool { return s.LessonsCompleted >= 1 },
	},
	{
		BadgeDefinition{model.BadgeXP100, "Getting Started", "Earn 100 XP", "⭐"},
		func(s UserStats, a ActivityEvent) bool { return s.XPTotal >= 100 },
	},
	{
		BadgeDefinition{model.BadgeXP500, "Rising Star", "Earn 500 XP", "🌟"},
		func(s UserStats, a ActivityEvent) bool { return s.XPTotal >= 500 },
	},
	{
		BadgeDefinition{model.BadgeXP1000, "XP Master", "Earn 1000 XP", "💫"},
		func(s UserStats, a ActivityEvent) bool { return s.XPTotal >= 1000 },
	},
	{
		BadgeDefinition{model.BadgeStreak3, "On a Roll", "Keep a 3-day streak", "🔥"},
		func(s UserStats, a ActivityEvent) bool { return s.CurrentStreak >= 3 },
	},
	{
		BadgeDefinition{model.BadgeStreak7, "Week Warrior", "Keep a 7-day streak", "⚡"},
		func(s UserStats, a ActivityEvent) bool { return s.CurrentStreak >= 7 },
	},
	{
		BadgeDefinition{model.BadgeStreak30, "Unstoppable", "Keep a 30-day streak", "🏆"},
		func(s UserStats, a ActivityEvent) bool { return s.CurrentStreak >= 30 },
	},
	{
		BadgeDefinition{model.BadgePerfectLesson, "Perfectionist", "Score 100% on a lesson", "💯"},
		func(s UserStats, a ActivityEvent) bool { return a.Perfect },
	},
	{
		BadgeDefinition{model.BadgeFirstSpeaking, "Breaking the Ice", "Complete your first speaking session", "🎤"},
		func(s UserStats, a ActivityEvent) bool {
			return a.Kind == "speaking" && s.SpeakingSessions >= 1
		},
	},
}

// AchievementService evaluates the badge predicate table against a stats
// snapshot plus the activity that just finished, and persists new grants.
type AchievementService interface {
	// CheckAchievements awards every badge that newly qualifies and returns
	// exactly the kinds awarded by this call.
	CheckAchievements(userID uint, stats UserStats, activity ActivityEvent) ([]string, error)
	Catalog() []BadgeDefinition
	// WithTx returns a service whose writes join the given transaction.
	WithTx(tx *gorm.DB) AchievementService
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
}

func NewAchievementService(achievementRepo repository.AchievementRepository) AchievementService {
	return &achievementService{achievementRepo: achievementRepo}
}

func (s *achievementService) WithTx(tx *gorm.DB) AchievementService {
	return &achievementService{achievementRepo: s.achievementRepo.WithTx(tx)}
}

func (s *achievementService) CheckAchievements(userID uint, stats UserStats, activity ActivityEvent) ([]string, error) {
	existing, err := s.achievementRepo.FindBadgeTypesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing badges for user %d: %w", userID, err)
	}
	earned := make(map[string]bool, len(existing))
	for _, badge := range existing {
		earned[badge] = true
	}

	var awarded []string
	for _, rule := range badgeRules {
		if earned[rule.Kind] {
			continue
		}
		if !rule.qualifies(stats, activity) {
			continue
		}
		record := &model.Achievement{
			UserID:    userID,
			BadgeType: rule.Kind,
			EarnedAt:  time.Now(),
		}
		if err := s.achievementRepo.Create(record); err != nil {
			return nil, fmt.Errorf("failed to persist badge %s for user %d: %w", rule.Kind, userID, err)
		}
		log.Info().Uint("user_id", userID).Str("badge", rule.Kind).Msg("Achievement unlocked")
		awarded = append(awarded, rule.Kind)
	}
	return awarded, nil
}

func (s *achievementService) Catalog() []BadgeDefinition {
	defs := make([]BadgeDefinition, 0, len(badgeRules))
	for _, rule := range badgeRules {
		defs = append(defs, rule.BadgeDefinition)
	}
	return defs
}
