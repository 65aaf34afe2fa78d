package service

import (
	"math"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
)

const (
	weakSkillThreshold   = 60.0
	strongSkillThreshold = 85.0
	needsReviewThreshold = 70.0
)

// PerformanceService scores a batch of answer results into per-skill
// accuracy breakdowns.
type PerformanceService interface {
	Analyze(results []model.AnswerResult) dto.PerformanceAnalysis
}

type performanceService struct{}

func NewPerformanceService() PerformanceService {
	return &performanceService{}
}

func (s *performanceService) Analyze(results []model.AnswerResult) dto.PerformanceAnalysis {
	analysis := dto.PerformanceAnalysis{
		Breakdown:  []dto.SkillBreakdown{},
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	if len(results) == 0 {
		return analysis
	}

	// Breakdown order is first-occurrence order of each skill tag, so a
	// map alone will not do; track the order separately.
	type tally struct{ correct, total int }
	tallies := make(map[string]*tally)
	var order []string

	totalCorrect := 0
	for _, r := range results {
		skill := r.SkillTag
		if skill == "" {
			skill = model.SkillGeneral
		}
		t, ok := tallies[skill]
		if !ok {
			t = &tally{}
			tallies[skill] = t
			order = append(order, skill)
		}
		t.total++
		if r.IsCorrect {
			t.correct++
			totalCorrect++
		}
	}

	for _, skill := range order {
		t := tallies[skill]
		accuracy := roundOneDecimal(float64(t.correct) / float64(t.total) * 100)
		analysis.Breakdown = append(analysis.Breakdown, dto.SkillBreakdown{
			Skill:    skill,
			Correct:  t.correct,
			Total:    t.total,
			Accuracy: accuracy,
		})
		if accuracy < weakSkillThreshold {
			analysis.Weaknesses = append(analysis.Weaknesses, skill)
		} else if accuracy >= strongSkillThreshold {
			analysis.Strengths = append(analysis.Strengths, skill)
		}
	}

	analysis.OverallAccuracy = roundOneDecimal(float64(totalCorrect) / float64(len(results)) * 100)
	analysis.NeedsReview = analysis.OverallAccuracy < needsReviewThreshold
	return analysis
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
