package service

import (
	"sort"
	"testing"

	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryVocabRepo struct {
	entries []model.VocabularyEntry
}

func (r *memoryVocabRepo) Upsert(e *model.VocabularyEntry) error {
	for i := range r.entries {
		if r.entries[i].UserID == e.UserID && r.entries[i].Word == e.Word {
			r.entries[i].MistakeCount++
			return nil
		}
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memoryVocabRepo) Save(e *model.VocabularyEntry) error {
	for i := range r.entries {
		if r.entries[i].UserID == e.UserID && r.entries[i].Word == e.Word {
			r.entries[i].Meaning = e.Meaning
			r.entries[i].Context = e.Context
			return nil
		}
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memoryVocabRepo) FindPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error) {
	var out []model.VocabularyEntry
	for _, e := range r.entries {
		if e.UserID == userID && !e.Mastered {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MistakeCount > out[j].MistakeCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryVocabRepo) FindRandomPendingByUser(userID uint, limit int) ([]model.VocabularyEntry, error) {
	return r.FindPendingByUser(userID, limit)
}

func (r *memoryVocabRepo) FindMasteredWords(userID uint) ([]string, error) {
	var words []string
	for _, e := range r.entries {
		if e.UserID == userID && e.Mastered {
			words = append(words, e.Word)
		}
	}
	return words, nil
}

func (r *memoryVocabRepo) MarkMastered(userID uint, word string) error {
	for i := range r.entries {
		if r.entries[i].UserID == userID && r.entries[i].Word == word {
			r.entries[i].Mastered = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memoryVocabRepo) Delete(userID uint, word string) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID != userID || e.Word != word {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *memoryVocabRepo) WithTx(tx *gorm.DB) repository.VocabularyRepository { return r }

func levelUsers(level model.CEFRLevel) *memoryUserRepo {
	return &memoryUserRepo{users: map[uint]model.User{
		1: {ID: 1, CEFRLevel: &level},
	}}
}

func TestAdvisorPadsShortListWithSuggestions(t *testing.T) {
	repo := &memoryVocabRepo{entries: []model.VocabularyEntry{
		{UserID: 1, Word: "consequence", MistakeCount: 3},
		{UserID: 1, Word: "perspective", MistakeCount: 1},
		{UserID: 1, Word: "efficient", Mastered: true},
	}}
	svc := NewVocabularyService(repo, levelUsers(model.LevelB1))

	advisor, err := svc.Advisor(1)
	require.NoError(t, err)

	// Two learner words plus B1 suggestions, minus the mastered one and the
	// two already listed.
	words := make([]string, 0, len(advisor.Words))
	for _, w := range advisor.Words {
		words = append(words, w.Word)
	}
	assert.Equal(t, []string{"consequence", "perspective", "accomplish", "inevitable"}, words)
	assert.Equal(t, 1, advisor.MasteredCount)
	assert.Equal(t, len(words), advisor.WordsToReview)

	assert.False(t, advisor.Words[0].Suggested)
	assert.Equal(t, 3, advisor.Words[0].MistakeCount)
	assert.True(t, advisor.Words[2].Suggested)
	require.NotNil(t, advisor.UserLevel)
	assert.Equal(t, "B1", *advisor.UserLevel)
}

func TestAdvisorDoesNotPadFullList(t *testing.T) {
	repo := &memoryVocabRepo{}
	for i := 0; i < advisorMinWords; i++ {
		require.NoError(t, repo.Upsert(&model.VocabularyEntry{
			UserID: 1, Word: string(rune('a' + i)), MistakeCount: 1,
		}))
	}
	svc := NewVocabularyService(repo, levelUsers(model.LevelA1))

	advisor, err := svc.Advisor(1)
	require.NoError(t, err)
	for _, w := range advisor.Words {
		assert.False(t, w.Suggested)
	}
}

func TestMarkMasteredNormalizesAndReportsUnknownWords(t *testing.T) {
	repo := &memoryVocabRepo{entries: []model.VocabularyEntry{
		{UserID: 1, Word: "cat"},
	}}
	svc := NewVocabularyService(repo, levelUsers(model.LevelA1))

	require.NoError(t, svc.MarkMastered(1, "  CAT "))
	assert.True(t, repo.entries[0].Mastered)

	err := svc.MarkMastered(1, "dog")
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestPracticeBuildsRecallQuestions(t *testing.T) {
	repo := &memoryVocabRepo{entries: []model.VocabularyEntry{
		{UserID: 1, Word: "elaborate", Meaning: "detailed and complex", Context: "Please ___ on your answer.", MistakeCount: 2},
	}}
	svc := NewVocabularyService(repo, levelUsers(model.LevelB2))

	practice, err := svc.Practice(1)
	require.NoError(t, err)

	require.Len(t, practice.Questions, 1)
	q := practice.Questions[0]
	assert.Equal(t, "vocabulary_recall", q.Type)
	assert.Equal(t, "elaborate", q.Word)
	assert.Equal(t, "Please ___ on your answer.", q.Hint)
	assert.Equal(t, "detailed and complex", q.CorrectAnswer)
}

func TestPracticeWithEmptyListExplainsItself(t *testing.T) {
	svc := NewVocabularyService(&memoryVocabRepo{}, levelUsers(model.LevelA1))

	practice, err := svc.Practice(1)
	require.NoError(t, err)
	assert.Empty(t, practice.Questions)
	assert.NotEmpty(t, practice.Message)
}
