package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService aggregates the dashboard and achievement views.
type ProgressService interface {
	Dashboard(userID uint) (*dto.DashboardResponse, error)
	AchievementCatalog(userID uint) ([]dto.AchievementCatalogEntry, error)
}

type progressService struct {
	userRepo        repository.UserRepository
	progressRepo    repository.ProgressRepository
	mistakeRepo     repository.MistakeRepository
	achievementRepo repository.AchievementRepository
	xpService       XPService
	perfService     PerformanceService
	achievementsSvc AchievementService
}

func NewProgressService(
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	mistakeRepo repository.MistakeRepository,
	achievementRepo repository.AchievementRepository,
	xpService XPService,
	perfService PerformanceService,
	achievementsSvc AchievementService,
) ProgressService {
	return &progressService{
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		mistakeRepo:     mistakeRepo,
		achievementRepo: achievementRepo,
		xpService:       xpService,
		perfService:     perfService,
		achievementsSvc: achievementsSvc,
	}
}

func (s *progressService) Dashboard(userID uint) (*dto.DashboardResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}

	userResp, err := userToResponse(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -6)
	dayEnd := dayStart.AddDate(0, 0, 1)

	todayXP, err := s.progressRepo.SumXPBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's XP: %w", err)
	}
	weeklyXP, err := s.progressRepo.SumXPBetween(userID, weekStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly XP: %w", err)
	}
	lessonsCompleted, err := s.progressRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}
	avgScore, err := s.progressRepo.AverageScore(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average score: %w", err)
	}
	pending, err := s.mistakeRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending mistakes: %w", err)
	}

	skills, err := s.skillBreakdown(userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.achievementRepo.FindRecentByUser(userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent achievements: %w", err)
	}
	defs := badgeDefinitionIndex(s.achievementsSvc.Catalog())
	recentResp := make([]dto.AchievementResponse, 0, len(recent))
	for _, a := range recent {
		def := defs[a.BadgeType]
		recentResp = append(recentResp, dto.AchievementResponse{
			BadgeType:   a.BadgeType,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			EarnedAt:    a.EarnedAt,
		})
	}

	return &dto.DashboardResponse{
		User:               *userResp,
		XPToNextLevel:      s.xpService.XPToNextLevel(user.XPTotal).XPNeeded,
		TodayXP:            todayXP,
		WeeklyXP:           weeklyXP,
		LessonsCompleted:   lessonsCompleted,
		AverageScore:       roundOneDecimal(avgScore),
		PendingReviews:     pending,
		SkillBreakdown:     skills,
		RecentAchievements: recentResp,
	}, nil
}

// skillBreakdown recomputes per-skill accuracy from the union of every
// progress record's embedded answer results. Nothing is cached; the records
// are the source of truth.
func (s *progressService) skillBreakdown(userID uint) ([]dto.SkillBreakdown, error) {
	all, err := collectAnswerResults(s.progressRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.perfService.Analyze(all).Breakdown, nil
}

// collectAnswerResults unions the embedded answer batches of every progress
// record for the user. Unreadable batches are skipped with a warning.
func collectAnswerResults(progressRepo repository.ProgressRepository, userID uint) ([]model.AnswerResult, error) {
	records, err := progressRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress records: %w", err)
	}

	var all []model.AnswerResult
	for _, record := range records {
		if len(record.Answers) == 0 {
			continue
		}
		var answers []model.AnswerResult
		if err := json.Unmarshal(record.Answers, &answers); err != nil {
			log.Warn().Err(err).Uint("record_id", record.ID).Msg("Skipping unreadable answer batch")
			continue
		}
		all = append(all, answers...)
	}
	return all, nil
}

func (s *progressService) AchievementCatalog(userID uint) ([]dto.AchievementCatalogEntry, error) {
	earned, err := s.achievementRepo.FindRecentByUser(userID, len(badgeRules))
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, a := range earned {
		earnedAt[a.BadgeType] = a.EarnedAt
	}

	catalog := s.achievementsSvc.Catalog()
	entries := make([]dto.AchievementCatalogEntry, 0, len(catalog))
	for _, def := range catalog {
		entry := dto.AchievementCatalogEntry{
			BadgeType:   def.Kind,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
		}
		if at, ok := earnedAt[def.Kind]; ok {
			entry.Earned = true
			t := at
			entry.EarnedAt = &t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func badgeDefinitionIndex(defs []BadgeDefinition) map[string]BadgeDefinition {
	index := make(map[string]BadgeDefinition, len(defs))
	for _, def := range defs {
		index[def.Kind] = def
	}
	return index
}
