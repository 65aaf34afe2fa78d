package service

import (
	"fmt"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AdminService handles content authoring: lessons with their question sets,
// and lesson packs.
type AdminService interface {
	CreateLesson(req dto.LessonCreateDTO) (*dto.LessonResponse, error)
	CreatePack(req dto.PackCreateDTO) (*dto.PackResponse, error)
}

type adminService struct {
	lessonRepo repository.LessonRepository
	packRepo   repository.PackRepository
}

func NewAdminService(lessonRepo repository.LessonRepository, packRepo repository.PackRepository) AdminService {
	return &adminService{lessonRepo: lessonRepo, packRepo: packRepo}
}

func (s *adminService) CreateLesson(req dto.LessonCreateDTO) (*dto.LessonResponse, error) {
	level, ok := model.ParseCEFRLevel(req.CEFRLevel)
	if !ok {
		return nil, fmt.Errorf("invalid CEFR level %q", req.CEFRLevel)
	}

	lesson := &model.Lesson{
		PackID:      req.PackID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		CEFRLevel:   level,
		XPReward:    req.XPReward,
		OrderIndex:  req.OrderIndex,
	}
	for _, q := range req.Questions {
		question := model.Question{
			Type:          q.Type,
			Content:       datatypes.JSON(q.Content),
			CorrectAnswer: q.CorrectAnswer,
			SkillTag:      q.SkillTag,
			Difficulty:    q.Difficulty,
			XPValue:       q.XPValue,
		}
		if question.XPValue == 0 {
			question.XPValue = 10
		}
		lesson.Questions = append(lesson.Questions, question)
	}
	if lesson.XPReward == 0 {
		lesson.XPReward = 50
	}

	if err := s.lessonRepo.Create(lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	log.Info().Uint("lesson_id", lesson.ID).Str("type", lesson.Type).Int("questions", len(lesson.Questions)).
		Msg("Lesson created")
	return lessonToResponse(lesson, nil), nil
}

func (s *adminService) CreatePack(req dto.PackCreateDTO) (*dto.PackResponse, error) {
	level, ok := model.ParseCEFRLevel(req.CEFRLevel)
	if !ok {
		return nil, fmt.Errorf("invalid CEFR level %q", req.CEFRLevel)
	}

	pack := &model.LessonPack{
		Title:      req.Title,
		CEFRLevel:  level,
		Icon:       req.Icon,
		OrderIndex: req.OrderIndex,
	}
	if err := s.packRepo.Create(pack); err != nil {
		return nil, fmt.Errorf("failed to create pack: %w", err)
	}
	log.Info().Uint("pack_id", pack.ID).Msg("Lesson pack created")

	return &dto.PackResponse{
		ID:         pack.ID,
		Title:      pack.Title,
		CEFRLevel:  string(pack.CEFRLevel),
		Icon:       pack.Icon,
		OrderIndex: pack.OrderIndex,
	}, nil
}
