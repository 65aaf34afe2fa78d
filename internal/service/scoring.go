package service

import (
	"strings"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
)

// scoreSubmissions grades an answer batch against the question store.
// Answers referencing an unknown question are skipped (logged, not fatal)
// and do not count toward the total.
func scoreSubmissions(questionRepo repository.QuestionRepository, answers []dto.AnswerSubmission) ([]model.AnswerResult, int) {
	results := make([]model.AnswerResult, 0, len(answers))
	correctCount := 0

	ids := make([]uint, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := questionRepo.FindByIDs(ids)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load questions for scoring")
		return results, 0
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			log.Warn().Uint("question_id", a.QuestionID).Msg("Submitted answer references unknown question, skipping")
			continue
		}
		isCorrect := answersMatch(a.UserAnswer, q.CorrectAnswer)
		if isCorrect {
			correctCount++
		}
		results = append(results, model.AnswerResult{
			QuestionID: q.ID,
			IsCorrect:  isCorrect,
			SkillTag:   q.SkillTag,
		})
	}
	return results, correctCount
}

// answersMatch compares answers case-insensitively with surrounding
// whitespace ignored.
func answersMatch(userAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctAnswer))
}
