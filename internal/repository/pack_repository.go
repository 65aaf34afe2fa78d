package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
)

type PackRepository interface {
	Create(pack *model.LessonPack) error
	FindAllWithProgress(userID uint) ([]PackWithProgress, error)
}

// PackWithProgress is a pack row joined with the user's completion counts.
type PackWithProgress struct {
	model.LessonPack
	TotalLessons     int
	CompletedLessons int
}

type packRepository struct {
	db *gorm.DB
}

func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepository{db: db}
}

func (r *packRepository) Create(pack *model.LessonPack) error {
	return r.db.Create(pack).Error
}

func (r *packRepository) FindAllWithProgress(userID uint) ([]PackWithProgress, error) {
	var results []PackWithProgress
	err := r.db.Model(&model.LessonPack{}).
		Select(`lesson_packs.*,
			COUNT(DISTINCT lessons.id) as total_lessons,
			COUNT(DISTINCT progress_records.lesson_id) as completed_lessons`).
		Joins("LEFT JOIN lessons ON lessons.pack_id = lesson_packs.id AND lessons.deleted_at IS NULL").
		Joins("LEFT JOIN progress_records ON progress_records.lesson_id = lessons.id AND progress_records.user_id = ?", userID).
		Where("lesson_packs.deleted_at IS NULL").
		Group("lesson_packs.id").
		Order("lesson_packs.order_index ASC").
		Scan(&results).Error
	return results, err
}
