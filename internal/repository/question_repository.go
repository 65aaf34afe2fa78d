package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindRandomByLesson(lessonID uint, limit int) ([]model.Question, error)
	// FindRandomByLessonAndDifficulty supports placement test assembly:
	// a fixed count per difficulty tier.
	FindRandomByLessonAndDifficulty(lessonID uint, difficulty, limit int) ([]model.Question, error)
	// FindRandomBySkillAndDifficulties selects a drill pool. An empty
	// difficulties slice means the full unfiltered pool for the skill.
	FindRandomBySkillAndDifficulties(skillTag string, difficulties []int, limit int) ([]model.Question, error)
	FindByLessonID(lessonID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRandomByLesson(lessonID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("lesson_id = ?", lessonID).
		Order("RANDOM()").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRandomByLessonAndDifficulty(lessonID uint, difficulty, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("lesson_id = ? AND difficulty = ?", lessonID, difficulty).
		Order("RANDOM()").
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRandomBySkillAndDifficulties(skillTag string, difficulties []int, limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.Where("skill_tag = ?", skillTag)
	if len(difficulties) > 0 {
		query = query.Where("difficulty IN ?", difficulties)
	}
	err := query.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByLessonID(lessonID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("lesson_id = ?", lessonID).Find(&questions).Error
	return questions, err
}
