package repository

import (
	"time"

	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MistakeRepository interface {
	// Upsert inserts a mistake or, when the (user, question) pair already
	// exists, bumps miss_count and refreshes updated_at so frequency and
	// recency both reflect the latest miss.
	Upsert(mistake *model.Mistake) error
	FindByUser(userID uint) ([]model.Mistake, error)
	CountByUser(userID uint) (int64, error)
	DeleteByUserAndQuestion(userID, questionID uint) error
	WithTx(tx *gorm.DB) MistakeRepository
}

type mistakeRepository struct {
	db *gorm.DB
}

func NewMistakeRepository(db *gorm.DB) MistakeRepository {
	return &mistakeRepository{db: db}
}

func (r *mistakeRepository) WithTx(tx *gorm.DB) MistakeRepository {
	return &mistakeRepository{db: tx}
}

func (r *mistakeRepository) Upsert(mistake *model.Mistake) error {
	if mistake.MissCount == 0 {
		mistake.MissCount = 1
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"miss_count":  gorm.Expr("mistakes.miss_count + 1"),
			"updated_at":  time.Now(),
			"source_type": mistake.SourceType,
		}),
	}).Create(mistake).Error
}

func (r *mistakeRepository) FindByUser(userID uint) ([]model.Mistake, error) {
	var mistakes []model.Mistake
	err := r.db.Where("user_id = ?", userID).Find(&mistakes).Error
	return mistakes, err
}

func (r *mistakeRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Mistake{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *mistakeRepository) DeleteByUserAndQuestion(userID, questionID uint) error {
	return r.db.Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.Mistake{}).Error
}
