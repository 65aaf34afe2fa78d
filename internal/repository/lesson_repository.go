package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByIDWithQuestions(id uint) (*model.Lesson, error)
	// FindRandomByTypeAndLevel picks one lesson of the given type at the
	// given level, or any lesson of that type if none exists at the level.
	FindRandomByTypeAndLevel(lessonType string, level model.CEFRLevel) (*model.Lesson, error)
	FindFirstByType(lessonType string) (*model.Lesson, error)
	FindByTypeAndLevel(lessonType string, level model.CEFRLevel) (*model.Lesson, error)
	FindByPackID(packID uint) ([]model.Lesson, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	// GORM creates associated questions when lesson.Questions is populated.
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByIDWithQuestions(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.Preload("Questions").First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindRandomByTypeAndLevel(lessonType string, level model.CEFRLevel) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.Where("type = ? AND cefr_level = ?", lessonType, level).
		Order("RANDOM()").
		First(&lesson).Error
	if err == gorm.ErrRecordNotFound {
		// No lesson at this level; fall back to any lesson of the type.
		err = r.db.Where("type = ?", lessonType).Order("RANDOM()").First(&lesson).Error
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindFirstByType(lessonType string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.Where("type = ?", lessonType).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByTypeAndLevel(lessonType string, level model.CEFRLevel) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db.Where("type = ? AND cefr_level = ?", lessonType, level).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByPackID(packID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.Where("pack_id = ?", packID).Order("order_index ASC").Find(&lessons).Error
	return lessons, err
}
