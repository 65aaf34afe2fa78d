package service

import (
	"testing"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryStudyPlanRepo struct {
	plans map[uint]model.StudyPlan
}

func newMemoryStudyPlanRepo() *memoryStudyPlanRepo {
	return &memoryStudyPlanRepo{plans: make(map[uint]model.StudyPlan)}
}

func (r *memoryStudyPlanRepo) FindByUser(userID uint) (*model.StudyPlan, error) {
	plan, ok := r.plans[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := plan
	return &copied, nil
}

func (r *memoryStudyPlanRepo) Upsert(plan *model.StudyPlan) error {
	r.plans[plan.UserID] = *plan
	return nil
}

func newPlannerServiceForTest(plans *memoryStudyPlanRepo, users *memoryUserRepo, progress *memoryProgressRepo) PlannerService {
	return NewPlannerService(plans, users, progress, NewPerformanceService(), testConfig())
}

func TestGetPlanDefaultsWhenNeverSaved(t *testing.T) {
	level := model.LevelB1
	users := &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, CEFRLevel: &level},
	}}
	svc := newPlannerServiceForTest(newMemoryStudyPlanRepo(), users, &memoryProgressRepo{})

	plan, err := svc.GetPlan(1)
	require.NoError(t, err)

	assert.Equal(t, 15, plan.DailyGoalMinutes)
	assert.Equal(t, defaultStudyDays, plan.StudyDays)
	assert.True(t, plan.NotificationsEnabled)
	assert.Equal(t, []string{model.SkillVocabulary, model.SkillGrammar}, plan.RecommendedFocus)
	require.NotNil(t, plan.CurrentLevel)
	assert.Equal(t, "B1", *plan.CurrentLevel)
	assert.NotEmpty(t, plan.Tips)

	require.Len(t, plan.SuggestedSchedule, 7)
	assert.True(t, plan.SuggestedSchedule[0].Active, "monday is a default study day")
	assert.False(t, plan.SuggestedSchedule[6].Active, "sunday defaults to rest")
}

func TestUpdatePlanChangesOnlyProvidedFields(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{1: {ID: 1}}}
	plans := newMemoryStudyPlanRepo()
	svc := newPlannerServiceForTest(plans, users, &memoryProgressRepo{})

	goal := 30
	days := []string{"saturday", "sunday"}
	require.NoError(t, svc.UpdatePlan(1, dto.UpdateStudyPlanRequest{
		DailyGoalMinutes: &goal,
		StudyDays:        &days,
	}))

	plan, err := svc.GetPlan(1)
	require.NoError(t, err)
	assert.Equal(t, 30, plan.DailyGoalMinutes)
	assert.Equal(t, days, plan.StudyDays)
	assert.True(t, plan.NotificationsEnabled, "untouched fields keep their defaults")

	// A second partial update must not clobber the saved days.
	disabled := false
	require.NoError(t, svc.UpdatePlan(1, dto.UpdateStudyPlanRequest{NotificationsEnabled: &disabled}))

	plan, err = svc.GetPlan(1)
	require.NoError(t, err)
	assert.Equal(t, days, plan.StudyDays)
	assert.False(t, plan.NotificationsEnabled)
}

func TestSuggestedScheduleMarksRestDays(t *testing.T) {
	schedule := suggestedSchedule([]string{"Monday", "friday"})

	require.Len(t, schedule, 7)
	assert.True(t, schedule[0].Active)
	assert.Equal(t, "Daily Lesson + Grammar Sprint", schedule[0].Focus)
	assert.Equal(t, 15, schedule[0].DurationMinutes)

	assert.False(t, schedule[1].Active)
	assert.Equal(t, "Rest day", schedule[1].Focus)
	assert.Zero(t, schedule[1].DurationMinutes)

	assert.True(t, schedule[4].Active)
	assert.Equal(t, "Review Mode + Free Talk", schedule[4].Focus)
}

func TestRecommendedFocusCapsAndDefaults(t *testing.T) {
	assert.Equal(t, []string{model.SkillVocabulary, model.SkillGrammar}, recommendedFocus(nil))

	many := []string{model.SkillListening, model.SkillReading, model.SkillGrammar, model.SkillVocabulary}
	assert.Equal(t, many[:3], recommendedFocus(many))
}

func TestReminderStatusFlagsStreakAtRisk(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, CurrentStreak: 4},
	}}
	svc := newPlannerServiceForTest(newMemoryStudyPlanRepo(), users, &memoryProgressRepo{})

	status, err := svc.ReminderStatus(1)
	require.NoError(t, err)

	assert.False(t, status.GoalMetToday)
	assert.Zero(t, status.XPEarnedToday)
	assert.True(t, status.StreakAtRisk)
	assert.Contains(t, status.ReminderMessage, "4-day streak")
}

func TestReminderStatusGoalMetSilencesReminder(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, CurrentStreak: 4},
	}}
	progress := &memoryProgressRepo{}
	require.NoError(t, progress.Create(&model.ProgressRecord{
		UserID:      1,
		XPEarned:    60,
		CompletedAt: time.Now(),
	}))
	svc := newPlannerServiceForTest(newMemoryStudyPlanRepo(), users, progress)

	status, err := svc.ReminderStatus(1)
	require.NoError(t, err)

	assert.True(t, status.GoalMetToday)
	assert.Equal(t, 60, status.XPEarnedToday)
	assert.Equal(t, int64(1), status.LessonsCompletedToday)
	assert.False(t, status.StreakAtRisk)
	assert.Empty(t, status.ReminderMessage)
}

func TestReminderMessageForNewLearners(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{1: {ID: 1}}}
	svc := newPlannerServiceForTest(newMemoryStudyPlanRepo(), users, &memoryProgressRepo{})

	status, err := svc.ReminderStatus(1)
	require.NoError(t, err)

	assert.False(t, status.StreakAtRisk, "no streak to lose yet")
	assert.Equal(t, "Start your learning journey today!", status.ReminderMessage)
}
