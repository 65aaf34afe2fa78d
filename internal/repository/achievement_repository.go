package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	// Create inserts a badge grant. The (user, badge) unique index makes a
	// duplicate grant a no-op rather than an error.
	Create(achievement *model.Achievement) error
	FindBadgeTypesByUser(userID uint) ([]string, error)
	FindRecentByUser(userID uint, limit int) ([]model.Achievement, error)
	WithTx(tx *gorm.DB) AchievementRepository
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) WithTx(tx *gorm.DB) AchievementRepository {
	return &achievementRepository{db: tx}
}

func (r *achievementRepository) Create(achievement *model.Achievement) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_type"}},
		DoNothing: true,
	}).Create(achievement).Error
}

func (r *achievementRepository) FindBadgeTypesByUser(userID uint) ([]string, error) {
	var badges []string
	err := r.db.Model(&model.Achievement{}).
		Where("user_id = ?", userID).
		Pluck("badge_type", &badges).Error
	return badges, err
}

func (r *achievementRepository) FindRecentByUser(userID uint, limit int) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.db.Where("user_id = ?", userID).
		Order("earned_at DESC").
		Limit(limit).
		Find(&achievements).Error
	return achievements, err
}
