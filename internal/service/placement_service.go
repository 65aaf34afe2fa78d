package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidTransition rejects a transition request whose target level
	// is not strictly above the user's current level.
	ErrInvalidTransition = errors.New("target level must be higher than current level")
	// ErrAtMaxLevel means there is no level left to advance to.
	ErrAtMaxLevel = errors.New("already at the highest level")
)

const (
	placementPerDifficulty = 3
	// MinViableQuestions is the smallest drill pool worth serving; below
	// this the difficulty filter is dropped and the full skill pool used.
	MinViableQuestions  = 5
	sprintPoolSize      = 10
	transitionPassScore = 80
)

// PlacementService maps test results to CEFR levels and assembles
// difficulty-appropriate question pools.
type PlacementService interface {
	// AssignLevel maps a placement score to a starting level using fixed
	// correct-count breakpoints.
	AssignLevel(totalCorrect, totalQuestions int) model.CEFRLevel
	// NextTargetLevel returns the level directly above current.
	NextTargetLevel(current model.CEFRLevel) (model.CEFRLevel, error)
	// DifficultyBand maps a level to the question difficulties a drill at
	// that level should draw from.
	DifficultyBand(level model.CEFRLevel) []int
	// SelectDrillPool picks questions for a skill-targeted sprint, widening
	// to the full pool when the level band is too thin.
	SelectDrillPool(level model.CEFRLevel, skillTag string, limit int) ([]model.Question, error)

	GetPlacementTest() (*dto.PlacementTestResponse, error)
	SubmitPlacement(userID uint, req dto.SubmitPlacementRequest) (*dto.PlacementResultResponse, error)
	GetTransitionTest(userID uint, targetLevel string) (*dto.PlacementTestResponse, error)
	SubmitTransition(userID uint, targetLevel string, req dto.SubmitPlacementRequest) (*dto.TransitionResultResponse, error)
}

type placementService struct {
	lessonRepo   repository.LessonRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
}

func NewPlacementService(
	lessonRepo repository.LessonRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
) PlacementService {
	return &placementService{
		lessonRepo:   lessonRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

func (s *placementService) AssignLevel(totalCorrect, totalQuestions int) model.CEFRLevel {
	switch {
	case totalCorrect <= 3:
		return model.LevelA1
	case totalCorrect <= 6:
		return model.LevelA2
	case totalCorrect <= 10:
		return model.LevelB1
	case totalCorrect <= 13:
		return model.LevelB2
	default:
		return model.LevelC1
	}
}

func (s *placementService) NextTargetLevel(current model.CEFRLevel) (model.CEFRLevel, error) {
	idx := current.Index()
	if idx < 0 {
		return "", fmt.Errorf("unknown level %q", current)
	}
	if idx >= len(model.CEFRLevels)-1 {
		return "", ErrAtMaxLevel
	}
	return model.CEFRLevels[idx+1], nil
}

func (s *placementService) DifficultyBand(level model.CEFRLevel) []int {
	switch level {
	case model.LevelA1, model.LevelA2:
		return []int{1, 2}
	case model.LevelB1, model.LevelB2:
		return []int{3, 4}
	default:
		return []int{5}
	}
}

func (s *placementService) SelectDrillPool(level model.CEFRLevel, skillTag string, limit int) ([]model.Question, error) {
	band := s.DifficultyBand(level)
	questions, err := s.questionRepo.FindRandomBySkillAndDifficulties(skillTag, band, limit)
	if err != nil {
		return nil, err
	}
	if len(questions) < MinViableQuestions {
		// Too few in the band; never serve an empty drill while any
		// questions exist for the skill.
		log.Debug().Str("skill", skillTag).Ints("band", band).Int("found", len(questions)).
			Msg("Thin question band, widening to full pool")
		questions, err = s.questionRepo.FindRandomBySkillAndDifficulties(skillTag, nil, limit)
		if err != nil {
			return nil, err
		}
	}
	return questions, nil
}

func (s *placementService) GetPlacementTest() (*dto.PlacementTestResponse, error) {
	lesson, err := s.lessonRepo.FindFirstByType(model.LessonTypePlacement)
	if err != nil {
		return nil, fmt.Errorf("no placement test available: %w", err)
	}

	// Three questions per difficulty tier, easiest first.
	var questions []dto.QuestionResponse
	for difficulty := 1; difficulty <= 5; difficulty++ {
		batch, err := s.questionRepo.FindRandomByLessonAndDifficulty(lesson.ID, difficulty, placementPerDifficulty)
		if err != nil {
			return nil, fmt.Errorf("failed to assemble placement tier %d: %w", difficulty, err)
		}
		for _, q := range batch {
			questions = append(questions, dto.QuestionResponse{
				ID:         q.ID,
				Type:       q.Type,
				SkillTag:   q.SkillTag,
				Difficulty: q.Difficulty,
				Content:    json.RawMessage(q.Content),
			})
		}
	}

	return &dto.PlacementTestResponse{
		LessonID:       lesson.ID,
		Title:          lesson.Title,
		TotalQuestions: len(questions),
		Questions:      questions,
	}, nil
}

func (s *placementService) SubmitPlacement(userID uint, req dto.SubmitPlacementRequest) (*dto.PlacementResultResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}

	results, correctCount := scoreSubmissions(s.questionRepo, req.Answers)
	total := len(results)
	score := 0
	if total > 0 {
		score = correctCount * 100 / total
	}

	level := s.AssignLevel(correctCount, total)
	user.CEFRLevel = &level
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to store placement level: %w", err)
	}
	log.Info().Uint("user_id", userID).Str("level", string(level)).Msg("Placement assigned")

	return &dto.PlacementResultResponse{
		AssignedLevel:  string(level),
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
		Message:        fmt.Sprintf("Congratulations! You've been placed at %s level.", level),
	}, nil
}

func (s *placementService) GetTransitionTest(userID uint, targetLevel string) (*dto.PlacementTestResponse, error) {
	target, err := s.validateTransition(userID, targetLevel)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.FindByTypeAndLevel(model.LessonTypeTransition, target)
	if err != nil {
		return nil, fmt.Errorf("no transition test for level %s: %w", target, err)
	}
	questions, err := s.questionRepo.FindByLessonID(lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transition questions: %w", err)
	}

	resp := &dto.PlacementTestResponse{
		LessonID:       lesson.ID,
		Title:          fmt.Sprintf("Transition Test to %s", target),
		TotalQuestions: len(questions),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:         q.ID,
			Type:       q.Type,
			SkillTag:   q.SkillTag,
			Difficulty: q.Difficulty,
			Content:    json.RawMessage(q.Content),
		})
	}
	return resp, nil
}

func (s *placementService) SubmitTransition(userID uint, targetLevel string, req dto.SubmitPlacementRequest) (*dto.TransitionResultResponse, error) {
	target, err := s.validateTransition(userID, targetLevel)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}

	results, correctCount := scoreSubmissions(s.questionRepo, req.Answers)
	total := len(results)
	score := 0
	if total > 0 {
		score = correctCount * 100 / total
	}

	resp := &dto.TransitionResultResponse{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
	}
	if score < transitionPassScore {
		resp.Message = fmt.Sprintf("You need %d%% to advance. Keep practicing and try again!", transitionPassScore)
		return resp, nil
	}

	user.CEFRLevel = &target
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to store new level: %w", err)
	}
	log.Info().Uint("user_id", userID).Str("level", string(target)).Msg("Level transition passed")

	newLevel := string(target)
	resp.Passed = true
	resp.NewLevel = &newLevel
	resp.Message = fmt.Sprintf("Congratulations! You've advanced to %s.", target)
	return resp, nil
}

// validateTransition checks the target parses and sits strictly above the
// user's current level.
func (s *placementService) validateTransition(userID uint, targetLevel string) (model.CEFRLevel, error) {
	target, ok := model.ParseCEFRLevel(targetLevel)
	if !ok {
		return "", fmt.Errorf("invalid target level %q", targetLevel)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", fmt.Errorf("user %d not found: %w", userID, err)
	}
	currentIdx := 0
	if user.CEFRLevel != nil {
		currentIdx = user.CEFRLevel.Index()
	}
	if target.Index() <= currentIdx {
		return "", ErrInvalidTransition
	}
	return target, nil
}
