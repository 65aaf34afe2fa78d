package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"gorm.io/gorm"
)

const (
	advisorListSize  = 20
	advisorMinWords  = 10
	practiceQuizSize = 10
)

// ErrWordNotFound means the word is not on the learner's list.
var ErrWordNotFound = errors.New("word not found in your list")

// suggestedVocabulary holds starter words per level, served when a learner's
// own mistake-driven list is still thin.
var suggestedVocabulary = map[model.CEFRLevel][]dto.VocabularyWordResponse{
	model.LevelA1: {
		{Word: "hello", Meaning: "greeting", Suggested: true},
		{Word: "goodbye", Meaning: "farewell", Suggested: true},
		{Word: "please", Meaning: "polite request", Suggested: true},
		{Word: "thank you", Meaning: "expression of gratitude", Suggested: true},
		{Word: "water", Meaning: "liquid for drinking", Suggested: true},
		{Word: "food", Meaning: "something to eat", Suggested: true},
		{Word: "house", Meaning: "place to live", Suggested: true},
		{Word: "family", Meaning: "relatives", Suggested: true},
		{Word: "friend", Meaning: "close companion", Suggested: true},
		{Word: "work", Meaning: "job or employment", Suggested: true},
	},
	model.LevelA2: {
		{Word: "appointment", Meaning: "scheduled meeting", Suggested: true},
		{Word: "experience", Meaning: "knowledge from doing", Suggested: true},
		{Word: "opportunity", Meaning: "favorable chance", Suggested: true},
		{Word: "suggest", Meaning: "propose an idea", Suggested: true},
		{Word: "improve", Meaning: "make better", Suggested: true},
	},
	model.LevelB1: {
		{Word: "accomplish", Meaning: "achieve or complete", Suggested: true},
		{Word: "consequence", Meaning: "result of an action", Suggested: true},
		{Word: "efficient", Meaning: "working well", Suggested: true},
		{Word: "inevitable", Meaning: "certain to happen", Suggested: true},
		{Word: "perspective", Meaning: "point of view", Suggested: true},
	},
	model.LevelB2: {
		{Word: "ambiguous", Meaning: "having multiple meanings", Suggested: true},
		{Word: "comprehensive", Meaning: "complete and thorough", Suggested: true},
		{Word: "deteriorate", Meaning: "become worse", Suggested: true},
		{Word: "elaborate", Meaning: "detailed and complex", Suggested: true},
		{Word: "fluctuate", Meaning: "vary irregularly", Suggested: true},
	},
	model.LevelC1: {
		{Word: "ubiquitous", Meaning: "present everywhere", Suggested: true},
		{Word: "pragmatic", Meaning: "practical approach", Suggested: true},
		{Word: "nuance", Meaning: "subtle difference", Suggested: true},
		{Word: "meticulous", Meaning: "very careful and precise", Suggested: true},
		{Word: "eloquent", Meaning: "fluent and persuasive", Suggested: true},
	},
}

// VocabularyService maintains the learner's personal word list and serves
// the mistake-driven advisor view.
type VocabularyService interface {
	Advisor(userID uint) (*dto.VocabularyAdvisorResponse, error)
	Add(userID uint, req dto.AddVocabularyRequest) error
	MarkMastered(userID uint, word string) error
	Remove(userID uint, word string) error
	Practice(userID uint) (*dto.VocabularyPracticeResponse, error)
}

type vocabularyService struct {
	vocabRepo repository.VocabularyRepository
	userRepo  repository.UserRepository
}

func NewVocabularyService(vocabRepo repository.VocabularyRepository, userRepo repository.UserRepository) VocabularyService {
	return &vocabularyService{vocabRepo: vocabRepo, userRepo: userRepo}
}

func (s *vocabularyService) Advisor(userID uint) (*dto.VocabularyAdvisorResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}
	pending, err := s.vocabRepo.FindPendingByUser(userID, advisorListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary list: %w", err)
	}
	mastered, err := s.vocabRepo.FindMasteredWords(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mastered words: %w", err)
	}

	words := make([]dto.VocabularyWordResponse, 0, len(pending))
	for _, entry := range pending {
		e := entry
		words = append(words, dto.VocabularyWordResponse{
			Word:         e.Word,
			Meaning:      e.Meaning,
			Context:      e.Context,
			MistakeCount: e.MistakeCount,
			LastSeen:     &e.UpdatedAt,
		})
	}
	if len(words) < advisorMinWords {
		words = padWithSuggestions(words, userLevelOrDefault(user), mastered, advisorMinWords)
	}

	resp := &dto.VocabularyAdvisorResponse{
		WordsToReview: len(words),
		MasteredCount: len(mastered),
		Words:         words,
		Tip:           "Review these words regularly to improve your vocabulary!",
	}
	if user.CEFRLevel != nil {
		level := string(*user.CEFRLevel)
		resp.UserLevel = &level
	}
	return resp, nil
}

func (s *vocabularyService) Add(userID uint, req dto.AddVocabularyRequest) error {
	entry := &model.VocabularyEntry{
		UserID:  userID,
		Word:    normalizeWord(req.Word),
		Meaning: req.Meaning,
		Context: req.Context,
	}
	if err := s.vocabRepo.Save(entry); err != nil {
		return fmt.Errorf("failed to add word %q: %w", entry.Word, err)
	}
	return nil
}

func (s *vocabularyService) MarkMastered(userID uint, word string) error {
	err := s.vocabRepo.MarkMastered(userID, normalizeWord(word))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrWordNotFound
	}
	return err
}

func (s *vocabularyService) Remove(userID uint, word string) error {
	return s.vocabRepo.Delete(userID, normalizeWord(word))
}

func (s *vocabularyService) Practice(userID uint) (*dto.VocabularyPracticeResponse, error) {
	entries, err := s.vocabRepo.FindRandomPendingByUser(userID, practiceQuizSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice words: %w", err)
	}
	if len(entries) == 0 {
		return &dto.VocabularyPracticeResponse{
			Questions: []dto.VocabularyPracticeQuestion{},
			Message:   "No words to practice! Complete more lessons to build your vocabulary list.",
		}, nil
	}

	questions := make([]dto.VocabularyPracticeQuestion, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, dto.VocabularyPracticeQuestion{
			Type:          "vocabulary_recall",
			Word:          entry.Word,
			Hint:          entry.Context,
			CorrectAnswer: entry.Meaning,
		})
	}
	return &dto.VocabularyPracticeResponse{
		TotalWords: len(questions),
		Questions:  questions,
	}, nil
}

// padWithSuggestions appends level-appropriate starter words the learner has
// not mastered or already listed, up to the target size.
func padWithSuggestions(words []dto.VocabularyWordResponse, level model.CEFRLevel, mastered []string, target int) []dto.VocabularyWordResponse {
	seen := make(map[string]bool, len(words)+len(mastered))
	for _, w := range words {
		seen[w.Word] = true
	}
	for _, w := range mastered {
		seen[w] = true
	}

	suggestions, ok := suggestedVocabulary[level]
	if !ok {
		suggestions = suggestedVocabulary[model.LevelA1]
	}
	for _, suggestion := range suggestions {
		if len(words) >= target {
			break
		}
		if seen[suggestion.Word] {
			continue
		}
		words = append(words, suggestion)
	}
	return words
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
