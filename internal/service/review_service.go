package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	reviewQuizSize      = 10
	reviewXPReward      = 30
	partialXPFactor     = 0.7
	recencyWindowDays   = 30.0
	frequencyWeight     = 0.6
	recencyWeight       = 0.4
)

// MistakeOccurrence is one incorrect-answer event feeding the ranker.
type MistakeOccurrence struct {
	QuestionID uint
	Timestamp  time.Time
}

// RankMistakes orders question ids for review: frequently and recently
// missed questions first. Recency decays linearly to zero over 30 days;
// older occurrences still count toward frequency. Ties break by ascending
// question id so the ordering is reproducible.
func RankMistakes(occurrences []MistakeOccurrence, limit int, now time.Time) []uint {
	type aggregate struct {
		questionID uint
		count      int
		recency    float64
	}

	byQuestion := make(map[uint]*aggregate)
	var order []*aggregate

	for _, occ := range occurrences {
		agg, ok := byQuestion[occ.QuestionID]
		if !ok {
			agg = &aggregate{questionID: occ.QuestionID}
			byQuestion[occ.QuestionID] = agg
			order = append(order, agg)
		}
		agg.count++

		daysSince := now.Sub(occ.Timestamp).Hours() / 24
		recency := (recencyWindowDays - daysSince) / recencyWindowDays
		if recency < 0 {
			recency = 0
		}
		if recency > agg.recency {
			agg.recency = recency
		}
	}

	score := func(a *aggregate) float64 {
		return float64(a.count)*frequencyWeight + a.recency*recencyWeight
	}
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := score(order[i]), score(order[j])
		if si != sj {
			return si > sj
		}
		return order[i].questionID < order[j].questionID
	})

	if limit > len(order) {
		limit = len(order)
	}
	ranked := make([]uint, 0, limit)
	for _, agg := range order[:limit] {
		ranked = append(ranked, agg.questionID)
	}
	return ranked
}

// mistakeOccurrences expands the one-row-per-(user, question) storage back
// into individual miss events: the first miss at created_at and every repeat
// at updated_at, the only repeat timestamp the row retains.
func mistakeOccurrences(mistakes []model.Mistake) []MistakeOccurrence {
	var occurrences []MistakeOccurrence
	for _, m := range mistakes {
		occurrences = append(occurrences, MistakeOccurrence{QuestionID: m.QuestionID, Timestamp: m.CreatedAt})
		for i := 1; i < m.MissCount; i++ {
			occurrences = append(occurrences, MistakeOccurrence{QuestionID: m.QuestionID, Timestamp: m.UpdatedAt})
		}
	}
	return occurrences
}

// ReviewService builds mistake-driven review quizzes and applies their
// results.
type ReviewService interface {
	GenerateQuiz(userID uint) (*dto.ReviewQuizResponse, error)
	SubmitReview(userID uint, req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error)
	Stats(userID uint) (*dto.ReviewStatsResponse, error)
}

type reviewService struct {
	mistakeRepo     repository.MistakeRepository
	questionRepo    repository.QuestionRepository
	userRepo        repository.UserRepository
	progressRepo    repository.ProgressRepository
	xpService       XPService
	perfService     PerformanceService
	achievementsSvc AchievementService
	db              txRunner
}

func NewReviewService(
	mistakeRepo repository.MistakeRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	xpService XPService,
	perfService PerformanceService,
	achievementsSvc AchievementService,
	db *gorm.DB,
) ReviewService {
	return &reviewService{
		mistakeRepo:     mistakeRepo,
		questionRepo:    questionRepo,
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		xpService:       xpService,
		perfService:     perfService,
		achievementsSvc: achievementsSvc,
		db:              db,
	}
}

func (s *reviewService) GenerateQuiz(userID uint) (*dto.ReviewQuizResponse, error) {
	mistakes, err := s.mistakeRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mistakes for user %d: %w", userID, err)
	}

	if len(mistakes) == 0 {
		return &dto.ReviewQuizResponse{
			Title:        "Review Mode",
			Description:  "Great job! You have no pending mistakes to review.",
			Questions:    []dto.QuestionResponse{},
			CanExitEarly: true,
			Message:      "You're all caught up!",
		}, nil
	}

	ranked := RankMistakes(mistakeOccurrences(mistakes), reviewQuizSize, time.Now())
	questions, err := s.questionRepo.FindByIDs(ranked)
	if err != nil {
		return nil, fmt.Errorf("failed to load review questions: %w", err)
	}

	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]dto.QuestionResponse, 0, len(ranked))
	for _, id := range ranked {
		q, ok := byID[id]
		if !ok {
			// Question was removed since the mistake was recorded.
			continue
		}
		ordered = append(ordered, dto.QuestionResponse{
			ID:            q.ID,
			Type:          q.Type,
			SkillTag:      q.SkillTag,
			Difficulty:    q.Difficulty,
			Content:       json.RawMessage(q.Content),
			CorrectAnswer: q.CorrectAnswer,
			XPValue:       q.XPValue,
		})
	}

	return &dto.ReviewQuizResponse{
		Title:           "Review Mode",
		Description:     "Practice questions based on your past mistakes",
		TotalQuestions:  len(ordered),
		BasedOnMistakes: len(mistakes),
		Questions:       ordered,
		XPReward:        reviewXPReward,
		CanExitEarly:    true,
	}, nil
}

func (s *reviewService) SubmitReview(userID uint, req dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	var resp *dto.SubmitReviewResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		progressRepo := s.progressRepo.WithTx(tx)
		mistakeRepo := s.mistakeRepo.WithTx(tx)

		// Row lock serializes concurrent submissions for the same user.
		user, err := userRepo.FindByIDForUpdate(userID)
		if err != nil {
			return fmt.Errorf("user %d not found: %w", userID, err)
		}

		results, correctCount := scoreSubmissions(s.questionRepo, req.Answers)

		var cleared []uint
		for _, r := range results {
			if !r.IsCorrect {
				continue
			}
			if err := mistakeRepo.DeleteByUserAndQuestion(userID, r.QuestionID); err != nil {
				return fmt.Errorf("failed to clear mistake for question %d: %w", r.QuestionID, err)
			}
			cleared = append(cleared, r.QuestionID)
		}

		total := len(results)
		score := 0
		if total > 0 {
			score = correctCount * 100 / total
		}

		breakdown := s.xpService.CalculateLessonXP(correctCount, total, user.CurrentStreak, model.LessonTypeDaily)
		xpEarned := breakdown.Total
		if req.Partial {
			xpEarned = int(float64(xpEarned) * partialXPFactor)
		}

		user.XPTotal += xpEarned
		if err := userRepo.Update(user); err != nil {
			return fmt.Errorf("failed to update user XP: %w", err)
		}

		serialized, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to serialize results: %w", err)
		}
		record := &model.ProgressRecord{
			UserID:      userID,
			LessonID:    0, // review sessions are not tied to a lesson
			Score:       score,
			XPEarned:    xpEarned,
			Answers:     serialized,
			CompletedAt: time.Now(),
		}
		if err := progressRepo.Create(record); err != nil {
			return fmt.Errorf("failed to record review progress: %w", err)
		}

		stats := UserStats{
			XPTotal:       user.XPTotal,
			CurrentStreak: user.CurrentStreak,
		}
		if stats.LessonsCompleted, err = progressRepo.CountByUser(userID); err != nil {
			return fmt.Errorf("failed to count completions: %w", err)
		}
		if _, err := s.achievementsSvc.WithTx(tx).CheckAchievements(userID, stats, ActivityEvent{
			Kind:    "review",
			Score:   score,
			Perfect: total > 0 && correctCount == total,
		}); err != nil {
			return err
		}

		if cleared == nil {
			cleared = []uint{}
		}
		message := "Review completed!"
		if req.Partial {
			message = "Progress saved. Come back to continue!"
		}
		resp = &dto.SubmitReviewResponse{
			Success:        true,
			Partial:        req.Partial,
			Score:          score,
			CorrectCount:   correctCount,
			TotalQuestions: total,
			XPEarned:       xpEarned,
			ClearedIDs:     cleared,
			Analysis:       s.perfService.Analyze(results),
			Message:        message,
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("Review submission failed")
		return nil, err
	}
	return resp, nil
}

func (s *reviewService) Stats(userID uint) (*dto.ReviewStatsResponse, error) {
	totalReviews, err := s.progressRepo.CountReviews(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	avgScore, err := s.progressRepo.AverageReviewScore(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average review score: %w", err)
	}
	pending, err := s.mistakeRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending mistakes: %w", err)
	}

	recommendation := "Keep practicing to improve your weak areas!"
	if pending == 0 {
		recommendation = "No pending mistakes. Try a harder sprint!"
	}
	return &dto.ReviewStatsResponse{
		TotalReviews:    totalReviews,
		AverageScore:    roundOneDecimal(avgScore),
		PendingMistakes: pending,
		Recommendation:  recommendation,
	}, nil
}
