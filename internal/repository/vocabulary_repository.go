package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VocabularyRepository interface {
	// Upsert inserts a word or, when the (user, word) pair already exists,
	// bumps mistake_count and keeps the first recorded meaning and context.
	Upsert(entry *model.VocabularyEntry) error
	// Save inserts a word without touching mistake_count on conflict; used
	// for explicit learner adds.
	Save(entry *model.VocabularyEntry) error
	FindPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error)
	FindRandomPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error)
	FindMasteredWords(userID uint) ([]string, error)
	// MarkMastered flips the mastered flag; returns gorm.ErrRecordNotFound
	// when the word is not on the user's list.
	MarkMastered(userID uint, word string) error
	Delete(userID uint, word string) error
	WithTx(tx *gorm.DB) VocabularyRepository
}

type vocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) VocabularyRepository {
	return &vocabularyRepository{db: db}
}

func (r *vocabularyRepository) WithTx(tx *gorm.DB) VocabularyRepository {
	return &vocabularyRepository{db: tx}
}

func (r *vocabularyRepository) Upsert(entry *model.VocabularyEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "word"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"mistake_count": gorm.Expr("vocabulary_entries.mistake_count + 1"),
		}),
	}).Create(entry).Error
}

func (r *vocabularyRepository) Save(entry *model.VocabularyEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "word"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"meaning": entry.Meaning,
			"context": entry.Context,
		}),
	}).Create(entry).Error
}

func (r *vocabularyRepository) FindPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error) {
	var entries []model.VocabularyEntry
	err := r.db.Where("user_id = ? AND mastered = ?", userID, false).
		Order("mistake_count DESC, created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *vocabularyRepository) FindRandomPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error) {
	var entries []model.VocabularyEntry
	err := r.db.Where("user_id = ? AND mastered = ?", userID, false).
		Order("mistake_count DESC, RANDOM()").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *vocabularyRepository) FindMasteredWords(userID uint) ([]string, error) {
	var words []string
	err := r.db.Model(&model.VocabularyEntry{}).
		Where("user_id = ? AND mastered = ?", userID, true).
		Pluck("word", &words).Error
	return words, err
}

func (r *vocabularyRepository) MarkMastered(userID uint, word string) error {
	result := r.db.Model(&model.VocabularyEntry{}).
		Where("user_id = ? AND word = ?", userID, word).
		Update("mastered", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vocabularyRepository) Delete(userID uint, word string) error {
	return r.db.Where("user_id = ? AND word = ?", userID, word).
		Delete(&model.VocabularyEntry{}).Error
}
