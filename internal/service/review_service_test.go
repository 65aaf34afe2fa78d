package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTx runs the transaction body directly; the in-memory repositories
// below have nothing to roll back.
type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

// memoryUserRepo distinguishes plain reads from locked ones so tests can
// assert which path a pipeline takes.
type memoryUserRepo struct {
	users       map[uint]model.User
	plainReads  int
	lockedReads int
}

func (r *memoryUserRepo) get(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := u
	return &copied, nil
}

func (r *memoryUserRepo) Create(u *model.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) FindByID(id uint) (*model.User, error) {
	r.plainReads++
	return r.get(id)
}

func (r *memoryUserRepo) FindByIDForUpdate(id uint) (*model.User, error) {
	r.lockedReads++
	return r.get(id)
}

func (r *memoryUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepo) Update(u *model.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return r }

type memoryMistakeRepo struct {
	mistakes []model.Mistake
}

func (r *memoryMistakeRepo) Upsert(m *model.Mistake) error {
	for i := range r.mistakes {
		if r.mistakes[i].UserID == m.UserID && r.mistakes[i].QuestionID == m.QuestionID {
			r.mistakes[i].MissCount++
			r.mistakes[i].UpdatedAt = time.Now()
			return nil
		}
	}
	if m.MissCount == 0 {
		m.MissCount = 1
	}
	r.mistakes = append(r.mistakes, *m)
	return nil
}

func (r *memoryMistakeRepo) FindByUser(userID uint) ([]model.Mistake, error) {
	var out []model.Mistake
	for _, m := range r.mistakes {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryMistakeRepo) CountByUser(userID uint) (int64, error) {
	found, _ := r.FindByUser(userID)
	return int64(len(found)), nil
}

func (r *memoryMistakeRepo) DeleteByUserAndQuestion(userID, questionID uint) error {
	kept := r.mistakes[:0]
	for _, m := range r.mistakes {
		if m.UserID != userID || m.QuestionID != questionID {
			kept = append(kept, m)
		}
	}
	r.mistakes = kept
	return nil
}

func (r *memoryMistakeRepo) WithTx(tx *gorm.DB) repository.MistakeRepository { return r }

type memoryProgressRepo struct {
	records []model.ProgressRecord
}

func (r *memoryProgressRepo) Create(record *model.ProgressRecord) error {
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryProgressRepo) FindAllByUser(userID uint) ([]model.ProgressRecord, error) {
	var out []model.ProgressRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memoryProgressRepo) CountByUser(userID uint) (int64, error) {
	found, _ := r.FindAllByUser(userID)
	return int64(len(found)), nil
}

func (r *memoryProgressRepo) CountByUserAndLessonType(userID uint, lessonType string) (int64, error) {
	return 0, nil
}

func (r *memoryProgressRepo) LastCompletionDate(userID uint) (*time.Time, error) {
	var latest *time.Time
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		completed := rec.CompletedAt
		if latest == nil || completed.After(*latest) {
			latest = &completed
		}
	}
	return latest, nil
}

func (r *memoryProgressRepo) SumXPBetween(userID uint, from, to time.Time) (int, error) {
	total := 0
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.CompletedAt.Before(from) && rec.CompletedAt.Before(to) {
			total += rec.XPEarned
		}
	}
	return total, nil
}

func (r *memoryProgressRepo) CountBetween(userID uint, from, to time.Time) (int64, error) {
	var count int64
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.CompletedAt.Before(from) && rec.CompletedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *memoryProgressRepo) CompletedTodayByLessonType(userID uint, lessonType string, today time.Time) (bool, error) {
	return false, nil
}

func (r *memoryProgressRepo) AverageScore(userID uint) (float64, error) { return 0, nil }

func (r *memoryProgressRepo) CountReviews(userID uint) (int64, error) {
	var count int64
	for _, rec := range r.records {
		if rec.UserID == userID && rec.LessonID == 0 {
			count++
		}
	}
	return count, nil
}

func (r *memoryProgressRepo) AverageReviewScore(userID uint) (float64, error) { return 0, nil }

func (r *memoryProgressRepo) WithTx(tx *gorm.DB) repository.ProgressRepository { return r }

func daysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func TestRankMistakesFrequencyAndRecency(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Question 42: missed twice, 5 days ago (recency 25/30) and 40 days
	// ago (outside the decay window, recency 0 but still counts).
	// Question 7: missed once, today.
	occurrences := []MistakeOccurrence{
		{QuestionID: 42, Timestamp: daysAgo(now, 5)},
		{QuestionID: 7, Timestamp: now},
		{QuestionID: 42, Timestamp: daysAgo(now, 40)},
	}

	// score(42) = 2*0.6 + (25/30)*0.4 ≈ 1.533 > score(7) = 0.6 + 0.4 = 1.0
	got := RankMistakes(occurrences, 10, now)
	assert.Equal(t, []uint{42, 7}, got)
}

func TestRankMistakesOldOccurrencesContributeZeroRecency(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Question 1: two stale misses, frequency 2, recency 0 -> score 1.2.
	// Question 2: one miss today -> score 1.0.
	occurrences := []MistakeOccurrence{
		{QuestionID: 1, Timestamp: daysAgo(now, 45)},
		{QuestionID: 1, Timestamp: daysAgo(now, 60)},
		{QuestionID: 2, Timestamp: now},
	}

	got := RankMistakes(occurrences, 10, now)
	assert.Equal(t, []uint{1, 2}, got)
}

func TestRankMistakesTiesBreakByQuestionID(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	stale := daysAgo(now, 35)

	occurrences := []MistakeOccurrence{
		{QuestionID: 9, Timestamp: stale},
		{QuestionID: 3, Timestamp: stale},
		{QuestionID: 6, Timestamp: stale},
	}

	got := RankMistakes(occurrences, 10, now)
	assert.Equal(t, []uint{3, 6, 9}, got)
}

func TestRankMistakesTruncatesToLimit(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var occurrences []MistakeOccurrence
	for id := uint(1); id <= 20; id++ {
		occurrences = append(occurrences, MistakeOccurrence{QuestionID: id, Timestamp: now})
	}

	got := RankMistakes(occurrences, 10, now)
	assert.Len(t, got, 10)
}

func TestRankMistakesLengthIsMinOfLimitAndDistinct(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	occurrences := []MistakeOccurrence{
		{QuestionID: 1, Timestamp: now},
		{QuestionID: 1, Timestamp: daysAgo(now, 1)},
		{QuestionID: 2, Timestamp: now},
	}

	got := RankMistakes(occurrences, 10, now)
	assert.Len(t, got, 2)
}

func TestRankMistakesEmptyInput(t *testing.T) {
	got := RankMistakes(nil, 10, time.Now())
	assert.Empty(t, got)
}

func TestMistakeOccurrencesExpandMissCount(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := created.AddDate(0, 0, 4)

	occurrences := mistakeOccurrences([]model.Mistake{
		{QuestionID: 5, MissCount: 3, CreatedAt: created, UpdatedAt: updated},
		{QuestionID: 9, MissCount: 1, CreatedAt: created, UpdatedAt: created},
	})

	counts := make(map[uint]int)
	for _, occ := range occurrences {
		counts[occ.QuestionID]++
	}
	assert.Equal(t, 3, counts[5], "every recorded miss should count toward frequency")
	assert.Equal(t, 1, counts[9])

	// The first miss keeps its original timestamp; repeats carry the latest.
	assert.Equal(t, created, occurrences[0].Timestamp)
	assert.Equal(t, updated, occurrences[1].Timestamp)
	assert.Equal(t, updated, occurrences[2].Timestamp)
}

func newReviewServiceForTest(users *memoryUserRepo, questions *scoringQuestionRepo, mistakes *memoryMistakeRepo, progress *memoryProgressRepo) ReviewService {
	return &reviewService{
		mistakeRepo:     mistakes,
		questionRepo:    questions,
		userRepo:        users,
		progressRepo:    progress,
		xpService:       NewXPService(testConfig()),
		perfService:     NewPerformanceService(),
		achievementsSvc: NewAchievementService(&memoryAchievementRepo{}),
		db:              fakeTx{},
	}
}

func TestSubmitReviewAwardsXPUnderRowLock(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, XPTotal: 100, CurrentStreak: 2},
	}}
	questions := &scoringQuestionRepo{byID: map[uint]model.Question{
		1: {ID: 1, CorrectAnswer: "cat", SkillTag: model.SkillVocabulary},
		2: {ID: 2, CorrectAnswer: "run", SkillTag: model.SkillGrammar},
	}}
	mistakes := &memoryMistakeRepo{}
	require.NoError(t, mistakes.Upsert(&model.Mistake{UserID: 1, QuestionID: 1}))
	require.NoError(t, mistakes.Upsert(&model.Mistake{UserID: 1, QuestionID: 2}))
	progress := &memoryProgressRepo{}
	svc := newReviewServiceForTest(users, questions, mistakes, progress)

	req := dto.SubmitReviewRequest{Answers: []dto.AnswerSubmission{
		{QuestionID: 1, UserAnswer: "cat"},
		{QuestionID: 2, UserAnswer: "walk"},
	}}

	resp, err := svc.SubmitReview(1, req)
	require.NoError(t, err)

	// 1 of 2 correct: base 10 + streak 10, no completion bonus below 60%.
	assert.Equal(t, 20, resp.XPEarned)
	assert.Equal(t, []uint{1}, resp.ClearedIDs)
	assert.Equal(t, 120, users.users[1].XPTotal)

	// The user row is read under the transaction's lock, never outside it.
	assert.Equal(t, 1, users.lockedReads)
	assert.Zero(t, users.plainReads)

	require.Len(t, progress.records, 1)
	assert.Zero(t, progress.records[0].LessonID)
	assert.Equal(t, 20, progress.records[0].XPEarned)

	// A second submission starts from the committed total; nothing is lost.
	_, err = svc.SubmitReview(1, req)
	require.NoError(t, err)
	assert.Equal(t, 140, users.users[1].XPTotal)
	assert.Equal(t, 2, users.lockedReads)
}

func TestSubmitReviewPartialScalesXP(t *testing.T) {
	users := &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, XPTotal: 0, CurrentStreak: 0},
	}}
	questions := &scoringQuestionRepo{byID: map[uint]model.Question{
		1: {ID: 1, CorrectAnswer: "cat", SkillTag: model.SkillVocabulary},
	}}
	mistakes := &memoryMistakeRepo{}
	require.NoError(t, mistakes.Upsert(&model.Mistake{UserID: 1, QuestionID: 1}))
	svc := newReviewServiceForTest(users, questions, mistakes, &memoryProgressRepo{})

	resp, err := svc.SubmitReview(1, dto.SubmitReviewRequest{
		Answers: []dto.AnswerSubmission{{QuestionID: 1, UserAnswer: "cat"}},
		Partial: true,
	})
	require.NoError(t, err)

	// Full award would be 10 base + 50 completion + 25 perfect = 85; the
	// early exit keeps 70% of it.
	assert.Equal(t, 59, resp.XPEarned)
	assert.True(t, resp.Partial)
}
