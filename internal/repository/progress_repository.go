package repository

import (
	"time"

	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	// Create appends a progress record. Records are immutable; there is
	// deliberately no Update.
	Create(record *model.ProgressRecord) error
	FindAllByUser(userID uint) ([]model.ProgressRecord, error)
	CountByUser(userID uint) (int64, error)
	CountByUserAndLessonType(userID uint, lessonType string) (int64, error)
	// LastCompletionDate returns the date of the user's most recent
	// activity, or nil if none exists.
	LastCompletionDate(userID uint) (*time.Time, error)
	SumXPBetween(userID uint, from, to time.Time) (int, error)
	CountBetween(userID uint, from, to time.Time) (int64, error)
	CompletedTodayByLessonType(userID uint, lessonType string, today time.Time) (bool, error)
	AverageScore(userID uint) (float64, error)
	// Review sessions are stored with a zero lesson id; these aggregate
	// over that subset only.
	CountReviews(userID uint) (int64, error)
	AverageReviewScore(userID uint) (float64, error)
	WithTx(tx *gorm.DB) ProgressRepository
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	return &progressRepository{db: tx}
}

func (r *progressRepository) Create(record *model.ProgressRecord) error {
	return r.db.Create(record).Error
}

func (r *progressRepository) FindAllByUser(userID uint) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").Find(&records).Error
	return records, err
}

func (r *progressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *progressRepository) CountByUserAndLessonType(userID uint, lessonType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).
		Joins("JOIN lessons ON lessons.id = progress_records.lesson_id").
		Where("progress_records.user_id = ? AND lessons.type = ?", userID, lessonType).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) LastCompletionDate(userID uint) (*time.Time, error) {
	var record model.ProgressRecord
	err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record.CompletedAt, nil
}

func (r *progressRepository) SumXPBetween(userID uint, from, to time.Time) (int, error) {
	var total int64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Select("COALESCE(SUM(xp_earned), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *progressRepository) CountBetween(userID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) CompletedTodayByLessonType(userID uint, lessonType string, today time.Time) (bool, error) {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).
		Joins("JOIN lessons ON lessons.id = progress_records.lesson_id").
		Where("progress_records.user_id = ? AND lessons.type = ? AND progress_records.completed_at >= ?",
			userID, lessonType, dayStart).
		Count(&count).Error
	return count > 0, err
}

func (r *progressRepository) CountReviews(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND lesson_id = 0", userID).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) AverageReviewScore(userID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND lesson_id = 0", userID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *progressRepository) AverageScore(userID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&model.ProgressRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}
