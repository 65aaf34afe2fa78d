package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Lingora/config"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"gorm.io/gorm"
)

const maxRecommendedFocus = 3

var defaultStudyDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var studyPlanTips = []string{
	"Consistency is key! Try to study at the same time each day.",
	"Short, frequent sessions are more effective than long, rare ones.",
	"Practice speaking even if it feels uncomfortable at first.",
}

// dayActivities is the focus suggestion per weekday, in week order.
var dayActivities = []dto.ScheduleDay{
	{Day: "Monday", Focus: "Daily Lesson + Grammar Sprint", DurationMinutes: 15},
	{Day: "Tuesday", Focus: "Daily Lesson + Vocabulary", DurationMinutes: 15},
	{Day: "Wednesday", Focus: "Speaking Practice", DurationMinutes: 20},
	{Day: "Thursday", Focus: "Daily Lesson + Word Sprint", DurationMinutes: 15},
	{Day: "Friday", Focus: "Review Mode + Free Talk", DurationMinutes: 25},
	{Day: "Saturday", Focus: "Speaking Practice", DurationMinutes: 20},
	{Day: "Sunday", Focus: "Weekly Review", DurationMinutes: 15},
}

// PlannerService serves the study plan, its updates and the daily reminder
// status.
type PlannerService interface {
	GetPlan(userID uint) (*dto.StudyPlanResponse, error)
	UpdatePlan(userID uint, req dto.UpdateStudyPlanRequest) error
	ReminderStatus(userID uint) (*dto.ReminderStatusResponse, error)
}

type plannerService struct {
	planRepo     repository.StudyPlanRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	perfService  PerformanceService
	dailyGoalXP  int
}

func NewPlannerService(
	planRepo repository.StudyPlanRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	perfService PerformanceService,
	cfg *config.Config,
) PlannerService {
	return &plannerService{
		planRepo:     planRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		perfService:  perfService,
		dailyGoalXP:  cfg.XP.DailyLessonComplete,
	}
}

func (s *plannerService) GetPlan(userID uint) (*dto.StudyPlanResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}
	plan, err := s.loadOrDefault(userID)
	if err != nil {
		return nil, err
	}
	studyDays := planStudyDays(plan)

	answers, err := collectAnswerResults(s.progressRepo, userID)
	if err != nil {
		return nil, err
	}
	analysis := s.perfService.Analyze(answers)

	resp := &dto.StudyPlanResponse{
		DailyGoalMinutes:     plan.DailyGoalMinutes,
		StudyDays:            studyDays,
		NotificationsEnabled: plan.NotificationsEnabled,
		ReminderTime:         plan.ReminderTime,
		RecommendedFocus:     recommendedFocus(analysis.Weaknesses),
		SuggestedSchedule:    suggestedSchedule(studyDays),
		Tips:                 studyPlanTips,
	}
	if user.CEFRLevel != nil {
		level := string(*user.CEFRLevel)
		resp.CurrentLevel = &level
	}
	return resp, nil
}

func (s *plannerService) UpdatePlan(userID uint, req dto.UpdateStudyPlanRequest) error {
	plan, err := s.loadOrDefault(userID)
	if err != nil {
		return err
	}

	if req.DailyGoalMinutes != nil {
		plan.DailyGoalMinutes = *req.DailyGoalMinutes
	}
	if req.StudyDays != nil {
		serialized, err := json.Marshal(*req.StudyDays)
		if err != nil {
			return fmt.Errorf("failed to serialize study days: %w", err)
		}
		plan.StudyDays = serialized
	}
	if req.NotificationsEnabled != nil {
		plan.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.ReminderTime != nil {
		plan.ReminderTime = *req.ReminderTime
	}

	if err := s.planRepo.Upsert(plan); err != nil {
		return fmt.Errorf("failed to save study plan: %w", err)
	}
	return nil
}

func (s *plannerService) ReminderStatus(userID uint) (*dto.ReminderStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}
	plan, err := s.loadOrDefault(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	xpToday, err := s.progressRepo.SumXPBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum today's XP: %w", err)
	}
	lessonsToday, err := s.progressRepo.CountBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's activities: %w", err)
	}

	goalMet := xpToday >= s.dailyGoalXP
	resp := &dto.ReminderStatusResponse{
		GoalMetToday:          goalMet,
		XPEarnedToday:         xpToday,
		LessonsCompletedToday: lessonsToday,
		CurrentStreak:         user.CurrentStreak,
		StreakAtRisk:          !goalMet && user.CurrentStreak > 0,
		NotificationsEnabled:  plan.NotificationsEnabled,
	}
	if !goalMet {
		resp.ReminderMessage = reminderMessage(user.CurrentStreak)
	}
	return resp, nil
}

// loadOrDefault returns the stored plan or a fresh one with defaults when the
// user has never saved settings.
func (s *plannerService) loadOrDefault(userID uint) (*model.StudyPlan, error) {
	plan, err := s.planRepo.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.StudyPlan{
			UserID:               userID,
			DailyGoalMinutes:     15,
			NotificationsEnabled: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}
	return plan, nil
}

func planStudyDays(plan *model.StudyPlan) []string {
	if len(plan.StudyDays) == 0 {
		return defaultStudyDays
	}
	var days []string
	if err := json.Unmarshal(plan.StudyDays, &days); err != nil || len(days) == 0 {
		return defaultStudyDays
	}
	return days
}

// suggestedSchedule maps the chosen study days onto the weekly activity
// rotation; unchosen days become rest days.
func suggestedSchedule(studyDays []string) []dto.ScheduleDay {
	active := make(map[string]bool, len(studyDays))
	for _, day := range studyDays {
		active[normalizeWord(day)] = true
	}

	schedule := make([]dto.ScheduleDay, 0, len(dayActivities))
	for _, entry := range dayActivities {
		if active[normalizeWord(entry.Day)] {
			entry.Active = true
		} else {
			entry = dto.ScheduleDay{Day: entry.Day, Focus: "Rest day"}
		}
		schedule = append(schedule, entry)
	}
	return schedule
}

func recommendedFocus(weaknesses []string) []string {
	if len(weaknesses) == 0 {
		return []string{model.SkillVocabulary, model.SkillGrammar}
	}
	if len(weaknesses) > maxRecommendedFocus {
		weaknesses = weaknesses[:maxRecommendedFocus]
	}
	return weaknesses
}

func reminderMessage(streak int) string {
	if streak > 0 {
		return fmt.Sprintf("Don't break your %d-day streak! Complete today's lesson.", streak)
	}
	return "Start your learning journey today!"
}
