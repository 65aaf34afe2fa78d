package service

import (
	"testing"

	"github.com/lshigami/Lingora/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeEmptyBatch(t *testing.T) {
	svc := NewPerformanceService()

	got := svc.Analyze(nil)

	assert.Equal(t, 0.0, got.OverallAccuracy)
	assert.Empty(t, got.Breakdown)
	assert.Empty(t, got.Strengths)
	assert.Empty(t, got.Weaknesses)
	assert.False(t, got.NeedsReview)
}

func TestAnalyzeSkillThresholds(t *testing.T) {
	svc := NewPerformanceService()

	results := []model.AnswerResult{
		{QuestionID: 1, IsCorrect: true, SkillTag: model.SkillGrammar},
		{QuestionID: 2, IsCorrect: true, SkillTag: model.SkillGrammar},
		{QuestionID: 3, IsCorrect: true, SkillTag: model.SkillGrammar},
		{QuestionID: 4, IsCorrect: false, SkillTag: model.SkillGrammar},
		{QuestionID: 5, IsCorrect: true, SkillTag: model.SkillVocabulary},
		{QuestionID: 6, IsCorrect: true, SkillTag: model.SkillVocabulary},
		{QuestionID: 7, IsCorrect: false, SkillTag: model.SkillListening},
		{QuestionID: 8, IsCorrect: false, SkillTag: model.SkillListening},
	}

	got := svc.Analyze(results)

	// 5/8 overall
	assert.Equal(t, 62.5, got.OverallAccuracy)
	assert.True(t, got.NeedsReview)

	// grammar 75 is neither weak nor strong, vocabulary 100 is strong,
	// listening 0 is weak
	assert.Equal(t, []string{model.SkillVocabulary}, got.Strengths)
	assert.Equal(t, []string{model.SkillListening}, got.Weaknesses)

	if assert.Len(t, got.Breakdown, 3) {
		assert.Equal(t, model.SkillGrammar, got.Breakdown[0].Skill)
		assert.Equal(t, 75.0, got.Breakdown[0].Accuracy)
		assert.Equal(t, 3, got.Breakdown[0].Correct)
		assert.Equal(t, 4, got.Breakdown[0].Total)
	}
}

func TestAnalyzeBreakdownKeepsFirstOccurrenceOrder(t *testing.T) {
	svc := NewPerformanceService()

	results := []model.AnswerResult{
		{QuestionID: 1, IsCorrect: true, SkillTag: model.SkillReading},
		{QuestionID: 2, IsCorrect: true, SkillTag: model.SkillGrammar},
		{QuestionID: 3, IsCorrect: true, SkillTag: model.SkillReading},
		{QuestionID: 4, IsCorrect: true, SkillTag: model.SkillVocabulary},
		{QuestionID: 5, IsCorrect: true, SkillTag: model.SkillGrammar},
	}

	got := svc.Analyze(results)

	skills := make([]string, 0, len(got.Breakdown))
	for _, b := range got.Breakdown {
		skills = append(skills, b.Skill)
	}
	assert.Equal(t, []string{model.SkillReading, model.SkillGrammar, model.SkillVocabulary}, skills)
}

func TestAnalyzeFoldsEmptySkillTagIntoGeneral(t *testing.T) {
	svc := NewPerformanceService()

	got := svc.Analyze([]model.AnswerResult{
		{QuestionID: 1, IsCorrect: true, SkillTag: ""},
		{QuestionID: 2, IsCorrect: false, SkillTag: ""},
	})

	if assert.Len(t, got.Breakdown, 1) {
		assert.Equal(t, model.SkillGeneral, got.Breakdown[0].Skill)
		assert.Equal(t, 50.0, got.Breakdown[0].Accuracy)
	}
}

func TestAnalyzeRoundsToOneDecimal(t *testing.T) {
	svc := NewPerformanceService()

	got := svc.Analyze([]model.AnswerResult{
		{QuestionID: 1, IsCorrect: true, SkillTag: model.SkillGrammar},
		{QuestionID: 2, IsCorrect: false, SkillTag: model.SkillGrammar},
		{QuestionID: 3, IsCorrect: false, SkillTag: model.SkillGrammar},
	})

	assert.Equal(t, 33.3, got.OverallAccuracy)
	assert.Equal(t, 33.3, got.Breakdown[0].Accuracy)
}
