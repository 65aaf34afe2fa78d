package service

import (
	"testing"

	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryAchievementRepo is an in-memory stand-in for the gorm repository.
type memoryAchievementRepo struct {
	records []model.Achievement
}

func (r *memoryAchievementRepo) Create(a *model.Achievement) error {
	for _, existing := range r.records {
		if existing.UserID == a.UserID && existing.BadgeType == a.BadgeType {
			return nil // mirror the insert-if-absent semantics
		}
	}
	r.records = append(r.records, *a)
	return nil
}

func (r *memoryAchievementRepo) FindBadgeTypesByUser(userID uint) ([]string, error) {
	var badges []string
	for _, a := range r.records {
		if a.UserID == userID {
			badges = append(badges, a.BadgeType)
		}
	}
	return badges, nil
}

func (r *memoryAchievementRepo) FindRecentByUser(userID uint, limit int) ([]model.Achievement, error) {
	var out []model.Achievement
	for _, a := range r.records {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryAchievementRepo) WithTx(tx *gorm.DB) repository.AchievementRepository {
	return r
}

func TestCheckAchievementsAwardsAllQualifying(t *testing.T) {
	repo := &memoryAchievementRepo{}
	svc := NewAchievementService(repo)

	awarded, err := svc.CheckAchievements(1, UserStats{
		XPTotal:          150,
		CurrentStreak:    1,
		LessonsCompleted: 1,
	}, ActivityEvent{Kind: model.LessonTypeDaily, Score: 80})

	require.NoError(t, err)
	assert.Equal(t, []string{model.BadgeFirstLesson, model.BadgeXP100}, awarded)
}

func TestCheckAchievementsIsIdempotent(t *testing.T) {
	repo := &memoryAchievementRepo{}
	svc := NewAchievementService(repo)
	stats := UserStats{XPTotal: 150, CurrentStreak: 1, LessonsCompleted: 1}
	activity := ActivityEvent{Kind: model.LessonTypeDaily, Score: 80}

	first, err := svc.CheckAchievements(1, stats, activity)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.CheckAchievements(1, stats, activity)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCheckAchievementsPerfectLesson(t *testing.T) {
	repo := &memoryAchievementRepo{}
	svc := NewAchievementService(repo)

	awarded, err := svc.CheckAchievements(1, UserStats{LessonsCompleted: 5, XPTotal: 90},
		ActivityEvent{Kind: model.LessonTypeDaily, Score: 100, Perfect: true})

	require.NoError(t, err)
	assert.Contains(t, awarded, model.BadgePerfectLesson)
	assert.NotContains(t, awarded, model.BadgeXP100)
}

func TestCheckAchievementsStreakMilestones(t *testing.T) {
	tests := []struct {
		streak int
		want   []string
	}{
		{2, nil},
		{3, []string{model.BadgeStreak3}},
		{7, []string{model.BadgeStreak3, model.BadgeStreak7}},
		{30, []string{model.BadgeStreak3, model.BadgeStreak7, model.BadgeStreak30}},
	}
	for _, tt := range tests {
		repo := &memoryAchievementRepo{}
		svc := NewAchievementService(repo)

		awarded, err := svc.CheckAchievements(1, UserStats{CurrentStreak: tt.streak},
			ActivityEvent{Kind: model.LessonTypeDaily})

		require.NoError(t, err)
		for _, badge := range tt.want {
			assert.Contains(t, awarded, badge, "streak=%d", tt.streak)
		}
		assert.NotContains(t, awarded, model.BadgeFirstLesson)
	}
}

func TestCheckAchievementsFirstSpeakingRequiresSpeakingActivity(t *testing.T) {
	repo := &memoryAchievementRepo{}
	svc := NewAchievementService(repo)

	awarded, err := svc.CheckAchievements(1, UserStats{SpeakingSessions: 1},
		ActivityEvent{Kind: model.LessonTypeDaily})
	require.NoError(t, err)
	assert.NotContains(t, awarded, model.BadgeFirstSpeaking)

	awarded, err = svc.CheckAchievements(1, UserStats{SpeakingSessions: 1},
		ActivityEvent{Kind: "speaking"})
	require.NoError(t, err)
	assert.Contains(t, awarded, model.BadgeFirstSpeaking)
}

func TestCatalogMatchesRuleOrder(t *testing.T) {
	svc := NewAchievementService(&memoryAchievementRepo{})

	catalog := svc.Catalog()
	require.Len(t, catalog, len(badgeRules))
	for i, rule := range badgeRules {
		assert.Equal(t, rule.Kind, catalog[i].Kind)
		assert.NotEmpty(t, catalog[i].Title)
	}
}
