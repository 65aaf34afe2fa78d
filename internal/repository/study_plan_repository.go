package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudyPlanRepository interface {
	FindByUser(userID uint) (*model.StudyPlan, error)
	// Upsert writes the plan, replacing the existing row for the user.
	Upsert(plan *model.StudyPlan) error
}

type studyPlanRepository struct {
	db *gorm.DB
}

func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) FindByUser(userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	if err := r.db.Where("user_id = ?", userID).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *studyPlanRepository) Upsert(plan *model.StudyPlan) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"daily_goal_minutes", "study_days", "notifications_enabled", "reminder_time", "updated_at",
		}),
	}).Create(plan).Error
}
