package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LessonService serves lesson content and runs the activity-completion
// pipeline.
type LessonService interface {
	GetDailyLesson(userID uint) (*dto.LessonResponse, error)
	GetSprint(userID uint, sprintType string) (*dto.LessonResponse, error)
	GetLesson(lessonID uint) (*dto.LessonResponse, error)
	GetPacks(userID uint) ([]dto.PackResponse, error)
	GetPackLessons(packID uint) ([]dto.LessonResponse, error)
	// SubmitLesson scores the batch and applies XP, streak, progress,
	// mistakes and achievements as one transaction. Either everything
	// commits or nothing does.
	SubmitLesson(userID, lessonID uint, req dto.SubmitLessonRequest) (*dto.SubmitLessonResponse, error)
}

type lessonService struct {
	lessonRepo      repository.LessonRepository
	questionRepo    repository.QuestionRepository
	userRepo        repository.UserRepository
	progressRepo    repository.ProgressRepository
	mistakeRepo     repository.MistakeRepository
	packRepo        repository.PackRepository
	vocabRepo       repository.VocabularyRepository
	xpService       XPService
	perfService     PerformanceService
	achievementsSvc AchievementService
	placementSvc    PlacementService
	db              txRunner
}

func NewLessonService(
	lessonRepo repository.LessonRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	progressRepo repository.ProgressRepository,
	mistakeRepo repository.MistakeRepository,
	packRepo repository.PackRepository,
	vocabRepo repository.VocabularyRepository,
	xpService XPService,
	perfService PerformanceService,
	achievementsSvc AchievementService,
	placementSvc PlacementService,
	db *gorm.DB,
) LessonService {
	return &lessonService{
		lessonRepo:      lessonRepo,
		questionRepo:    questionRepo,
		userRepo:        userRepo,
		progressRepo:    progressRepo,
		mistakeRepo:     mistakeRepo,
		packRepo:        packRepo,
		vocabRepo:       vocabRepo,
		xpService:       xpService,
		perfService:     perfService,
		achievementsSvc: achievementsSvc,
		placementSvc:    placementSvc,
		db:              db,
	}
}

func (s *lessonService) GetDailyLesson(userID uint) (*dto.LessonResponse, error) {
	level, err := s.userLevel(userID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.lessonRepo.FindRandomByTypeAndLevel(model.LessonTypeDaily, level)
	if err != nil {
		return nil, fmt.Errorf("no daily lesson available: %w", err)
	}
	full, err := s.lessonRepo.FindByIDWithQuestions(lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %d: %w", lesson.ID, err)
	}
	return lessonToResponse(full, full.Questions), nil
}

var sprintSkills = map[string]string{
	model.LessonTypeGrammarSprint: model.SkillGrammar,
	model.LessonTypeWordSprint:    model.SkillVocabulary,
}

func (s *lessonService) GetSprint(userID uint, sprintType string) (*dto.LessonResponse, error) {
	skill, ok := sprintSkills[sprintType]
	if !ok {
		return nil, fmt.Errorf("unknown sprint type %q", sprintType)
	}
	level, err := s.userLevel(userID)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.FindRandomByTypeAndLevel(sprintType, level)
	if err != nil {
		return nil, fmt.Errorf("no %s available: %w", sprintType, err)
	}
	// Sprint content is drawn from the level-banded skill pool, not from
	// the container lesson's own questions.
	pool, err := s.placementSvc.SelectDrillPool(level, skill, sprintPoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s pool: %w", sprintType, err)
	}
	return lessonToResponse(lesson, pool), nil
}

func (s *lessonService) GetLesson(lessonID uint) (*dto.LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByIDWithQuestions(lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson %d not found: %w", lessonID, err)
	}
	return lessonToResponse(lesson, lesson.Questions), nil
}

func (s *lessonService) GetPacks(userID uint) ([]dto.PackResponse, error) {
	packs, err := s.packRepo.FindAllWithProgress(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load packs: %w", err)
	}
	resp := make([]dto.PackResponse, 0, len(packs))
	for _, p := range packs {
		resp = append(resp, dto.PackResponse{
			ID:               p.ID,
			Title:            p.Title,
			CEFRLevel:        string(p.CEFRLevel),
			Icon:             p.Icon,
			OrderIndex:       p.OrderIndex,
			TotalLessons:     p.TotalLessons,
			CompletedLessons: p.CompletedLessons,
		})
	}
	return resp, nil
}

func (s *lessonService) GetPackLessons(packID uint) ([]dto.LessonResponse, error) {
	lessons, err := s.lessonRepo.FindByPackID(packID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pack %d lessons: %w", packID, err)
	}
	resp := make([]dto.LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		lesson := l
		resp = append(resp, *lessonToResponse(&lesson, nil))
	}
	return resp, nil
}

func (s *lessonService) SubmitLesson(userID, lessonID uint, req dto.SubmitLessonRequest) (*dto.SubmitLessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("lesson %d not found: %w", lessonID, err)
	}

	var resp *dto.SubmitLessonResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		progressRepo := s.progressRepo.WithTx(tx)
		mistakeRepo := s.mistakeRepo.WithTx(tx)

		// Row lock serializes concurrent submissions for the same user.
		user, err := userRepo.FindByIDForUpdate(userID)
		if err != nil {
			return fmt.Errorf("user %d not found: %w", userID, err)
		}

		results, correctCount := scoreSubmissions(s.questionRepo, req.Answers)
		total := len(results)
		score := 0
		if total > 0 {
			score = correctCount * 100 / total
		}

		now := time.Now()
		lastActivity, err := progressRepo.LastCompletionDate(userID)
		if err != nil {
			return fmt.Errorf("failed to load last activity: %w", err)
		}
		newStreak := s.xpService.NextStreak(user.CurrentStreak, lastActivity, now)

		breakdown := s.xpService.CalculateLessonXP(correctCount, total, newStreak, lesson.Type)

		oldXP := user.XPTotal
		user.XPTotal += breakdown.Total
		user.CurrentStreak = newStreak
		if newStreak > user.LongestStreak {
			user.LongestStreak = newStreak
		}

		levelUp, _, newLevel := s.xpService.CheckLevelUp(oldXP, user.XPTotal)
		if levelUp {
			// XP promotes the stored level but never demotes below a
			// placement-assigned one.
			if user.CEFRLevel == nil || newLevel.Index() > user.CEFRLevel.Index() {
				user.CEFRLevel = &newLevel
			} else {
				levelUp = false
			}
		}

		if err := userRepo.Update(user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		serialized, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("failed to serialize results: %w", err)
		}
		record := &model.ProgressRecord{
			UserID:           userID,
			LessonID:         lessonID,
			Score:            score,
			XPEarned:         breakdown.Total,
			Answers:          serialized,
			CompletedAt:      now,
			TimeSpentSeconds: req.TimeSpentSeconds,
		}
		if err := progressRepo.Create(record); err != nil {
			return fmt.Errorf("failed to record progress: %w", err)
		}

		var mistakeIDs []uint
		for _, r := range results {
			if r.IsCorrect {
				continue
			}
			mistake := &model.Mistake{
				UserID:     userID,
				QuestionID: r.QuestionID,
				SourceType: lesson.Type,
			}
			if err := mistakeRepo.Upsert(mistake); err != nil {
				return fmt.Errorf("failed to record mistake for question %d: %w", r.QuestionID, err)
			}
			mistakeIDs = append(mistakeIDs, r.QuestionID)
		}

		if err := s.recordVocabularyMisses(s.vocabRepo.WithTx(tx), userID, results); err != nil {
			return err
		}

		lessonsCompleted, err := progressRepo.CountByUser(userID)
		if err != nil {
			return fmt.Errorf("failed to count completions: %w", err)
		}
		newBadges, err := s.achievementsSvc.WithTx(tx).CheckAchievements(userID, UserStats{
			XPTotal:          user.XPTotal,
			CurrentStreak:    user.CurrentStreak,
			LessonsCompleted: lessonsCompleted,
		}, ActivityEvent{
			Kind:    lesson.Type,
			Score:   score,
			Perfect: total > 0 && correctCount == total,
		})
		if err != nil {
			return err
		}
		if newBadges == nil {
			newBadges = []string{}
		}
		if mistakeIDs == nil {
			mistakeIDs = []uint{}
		}

		resp = &dto.SubmitLessonResponse{
			Success:         true,
			Score:           score,
			CorrectCount:    correctCount,
			TotalQuestions:  total,
			XPEarned:        breakdown.Total,
			XPBreakdown:     breakdown,
			NewStreak:       newStreak,
			LevelUp:         levelUp,
			MistakeIDs:      mistakeIDs,
			NewAchievements: newBadges,
			Analysis:        s.perfService.Analyze(results),
		}
		if levelUp {
			levelStr := string(newLevel)
			resp.NewLevel = &levelStr
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Uint("lesson_id", lessonID).Msg("Lesson submission failed")
		return nil, err
	}
	return resp, nil
}

// recordVocabularyMisses puts the correct answer of every missed
// vocabulary question onto the learner's personal word list.
func (s *lessonService) recordVocabularyMisses(vocabRepo repository.VocabularyRepository, userID uint, results []model.AnswerResult) error {
	var wrongIDs []uint
	for _, r := range results {
		if !r.IsCorrect && r.SkillTag == model.SkillVocabulary {
			wrongIDs = append(wrongIDs, r.QuestionID)
		}
	}
	if len(wrongIDs) == 0 {
		return nil
	}

	questions, err := s.questionRepo.FindByIDs(wrongIDs)
	if err != nil {
		return fmt.Errorf("failed to load missed vocabulary questions: %w", err)
	}
	for _, q := range questions {
		entry := &model.VocabularyEntry{
			UserID:       userID,
			Word:         normalizeWord(q.CorrectAnswer),
			Context:      questionPrompt(q),
			MistakeCount: 1,
		}
		if entry.Word == "" {
			continue
		}
		if err := vocabRepo.Upsert(entry); err != nil {
			return fmt.Errorf("failed to record vocabulary miss %q: %w", entry.Word, err)
		}
	}
	return nil
}

// questionPrompt pulls the prompt text out of the question's content blob,
// or returns empty when the shape is unexpected.
func questionPrompt(q model.Question) string {
	var content struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return ""
	}
	return content.Prompt
}

func (s *lessonService) userLevel(userID uint) (model.CEFRLevel, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", fmt.Errorf("user %d not found: %w", userID, err)
	}
	if user.CEFRLevel == nil {
		return model.LevelA1, nil
	}
	return *user.CEFRLevel, nil
}

// lessonToResponse builds the client view of a lesson. Correct answers are
// withheld; grading happens server side.
func lessonToResponse(lesson *model.Lesson, questions []model.Question) *dto.LessonResponse {
	resp := &dto.LessonResponse{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Type:        lesson.Type,
		CEFRLevel:   string(lesson.CEFRLevel),
		XPReward:    lesson.XPReward,
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:         q.ID,
			Type:       q.Type,
			SkillTag:   q.SkillTag,
			Difficulty: q.Difficulty,
			Content:    json.RawMessage(q.Content),
			XPValue:    q.XPValue,
		})
	}
	return resp
}
