package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// sessionTurnTarget is how many learner turns complete a session.
const sessionTurnTarget = 5

// ErrEmptyTurn means a turn carried neither audio nor text.
var ErrEmptyTurn = errors.New("turn must include audio or text")

// ErrSessionCompleted means the session has already been closed and paid out.
var ErrSessionCompleted = errors.New("session already completed")

// Scenario is a roleplay setting the conversation AI stays in character for.
type Scenario struct {
	ID          uint
	Title       string
	Description string
	CEFRLevel   model.CEFRLevel
	Context     string
}

var roleplayScenarios = []Scenario{
	{1, "At the Café", "Order a drink and a snack", model.LevelA1, "You are a barista taking the learner's order at a small café."},
	{2, "Checking In", "Check into a hotel", model.LevelA2, "You are a hotel receptionist checking the learner in."},
	{3, "Job Interview", "Answer common interview questions", model.LevelB1, "You are a hiring manager interviewing the learner for an office job."},
	{4, "Doctor's Visit", "Describe symptoms to a doctor", model.LevelB1, "You are a doctor asking the learner about their symptoms."},
	{5, "Apartment Hunt", "Negotiate a rental viewing", model.LevelB2, "You are a landlord showing the learner an apartment."},
	{6, "Debate Club", "Argue a position on a current topic", model.LevelC1, "You are a debate partner challenging the learner's position politely."},
}

// SpeakingService runs AI conversation sessions and awards speaking XP on
// completion.
type SpeakingService interface {
	ListScenarios() []dto.ScenarioResponse
	StartSession(ctx context.Context, userID uint, req dto.StartSpeakingSessionRequest) (*dto.SpeakingSessionResponse, error)
	SubmitTurn(ctx context.Context, userID, sessionID uint, req dto.SpeakingTurnRequest) (*dto.SpeakingTurnResponse, error)
	// EndSession closes a session on the learner's request, averaging the
	// accumulated scores and awarding XP.
	EndSession(userID, sessionID uint) (*dto.EndSpeakingSessionResponse, error)
}

type speakingService struct {
	conversationRepo repository.ConversationRepository
	userRepo         repository.UserRepository
	xpService        XPService
	achievementsSvc  AchievementService
	speechService    SpeechService
	db               txRunner
}

func NewSpeakingService(
	conversationRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	xpService XPService,
	achievementsSvc AchievementService,
	speechService SpeechService,
	db *gorm.DB,
) SpeakingService {
	return &speakingService{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		xpService:        xpService,
		achievementsSvc:  achievementsSvc,
		speechService:    speechService,
		db:               db,
	}
}

func (s *speakingService) ListScenarios() []dto.ScenarioResponse {
	resp := make([]dto.ScenarioResponse, 0, len(roleplayScenarios))
	for _, sc := range roleplayScenarios {
		resp = append(resp, dto.ScenarioResponse{
			ID:          sc.ID,
			Title:       sc.Title,
			Description: sc.Description,
			CEFRLevel:   string(sc.CEFRLevel),
		})
	}
	return resp
}

func (s *speakingService) StartSession(ctx context.Context, userID uint, req dto.StartSpeakingSessionRequest) (*dto.SpeakingSessionResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}

	greeting := "Hi! Let's practice some English. What would you like to talk about?"
	scenario := scenarioContext(req.ScenarioID)
	if req.SessionType == model.SessionTypeRoleplay && scenario != "" {
		reply, err := s.speechService.GenerateReply(ctx, nil, scenario, userLevelOrDefault(user))
		if err == nil && reply != "" {
			greeting = reply
		}
	}

	messages, err := json.Marshal([]model.ConversationMessage{
		{IsAI: true, Text: greeting, Timestamp: time.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize greeting: %w", err)
	}
	scores, err := json.Marshal(model.SessionScores{})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize scores: %w", err)
	}

	session := &model.ConversationSession{
		UserID:      userID,
		SessionType: req.SessionType,
		Messages:    messages,
		Scores:      scores,
	}
	if err := s.conversationRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &dto.SpeakingSessionResponse{
		SessionID:   session.ID,
		SessionType: session.SessionType,
		Greeting:    greeting,
	}, nil
}

func (s *speakingService) SubmitTurn(ctx context.Context, userID, sessionID uint, req dto.SpeakingTurnRequest) (*dto.SpeakingTurnResponse, error) {
	session, err := s.conversationRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("session %d not found: %w", sessionID, err)
	}
	if session.CompletedAt != nil {
		return nil, ErrSessionCompleted
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}
	level := userLevelOrDefault(user)

	transcript := req.Text
	if transcript == "" && req.AudioBase64 != "" {
		audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
		if err != nil {
			return nil, fmt.Errorf("invalid audio payload: %w", err)
		}
		transcript, err = s.speechService.Transcribe(ctx, audio, "audio/webm")
		if err != nil {
			return nil, err
		}
	}
	if transcript == "" {
		return nil, ErrEmptyTurn
	}

	var messages []model.ConversationMessage
	if err := json.Unmarshal(session.Messages, &messages); err != nil {
		return nil, fmt.Errorf("corrupt session transcript: %w", err)
	}
	var scores model.SessionScores
	if err := json.Unmarshal(session.Scores, &scores); err != nil {
		return nil, fmt.Errorf("corrupt session scores: %w", err)
	}

	turnScores, err := s.speechService.ScoreSpeech(ctx, transcript, session.SessionType, level)
	if err != nil {
		return nil, err
	}
	scores.Fluency = append(scores.Fluency, turnScores.Fluency)
	scores.Grammar = append(scores.Grammar, turnScores.Grammar)
	scores.Vocabulary = append(scores.Vocabulary, turnScores.Vocabulary)

	now := time.Now()
	messages = append(messages, model.ConversationMessage{Text: transcript, Timestamp: now})

	reply, err := s.speechService.GenerateReply(ctx, messages, session.SessionType, level)
	if err != nil {
		return nil, err
	}
	messages = append(messages, model.ConversationMessage{IsAI: true, Text: reply, Timestamp: now})

	if session.Messages, err = json.Marshal(messages); err != nil {
		return nil, fmt.Errorf("failed to serialize transcript: %w", err)
	}
	if session.Scores, err = json.Marshal(scores); err != nil {
		return nil, fmt.Errorf("failed to serialize scores: %w", err)
	}
	if err := s.conversationRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	resp := &dto.SpeakingTurnResponse{
		Transcript: transcript,
		Reply:      reply,
		Scores: dto.TurnScores{
			Fluency:    turnScores.Fluency,
			Grammar:    turnScores.Grammar,
			Vocabulary: turnScores.Vocabulary,
		},
	}

	if learnerTurns(messages) >= sessionTurnTarget {
		xp, _, err := s.completeSession(userID, session, scores)
		if err != nil {
			return nil, err
		}
		resp.Completed = true
		resp.XPEarned = xp
		resp.Message = "Session complete, great speaking practice!"
	}
	return resp, nil
}

func (s *speakingService) EndSession(userID, sessionID uint) (*dto.EndSpeakingSessionResponse, error) {
	session, err := s.conversationRepo.FindByIDAndUser(sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("session %d not found: %w", sessionID, err)
	}
	if session.CompletedAt != nil {
		return nil, ErrSessionCompleted
	}

	var messages []model.ConversationMessage
	if err := json.Unmarshal(session.Messages, &messages); err != nil {
		return nil, fmt.Errorf("corrupt session transcript: %w", err)
	}
	var scores model.SessionScores
	if err := json.Unmarshal(session.Scores, &scores); err != nil {
		return nil, fmt.Errorf("corrupt session scores: %w", err)
	}

	xp, duration, err := s.completeSession(userID, session, scores)
	if err != nil {
		return nil, err
	}

	turns := learnerTurns(messages)
	return &dto.EndSpeakingSessionResponse{
		SessionID:       session.ID,
		DurationSeconds: duration,
		MessageCount:    turns,
		FinalScores: dto.TurnScores{
			Fluency:    average(scores.Fluency),
			Grammar:    average(scores.Grammar),
			Vocabulary: average(scores.Vocabulary),
		},
		XPEarned: xp,
		Summary:  fmt.Sprintf("Great session! You exchanged %d messages over %d minutes.", turns, duration/60),
	}, nil
}

// completeSession marks the session finished, awards speaking XP and runs the
// achievement check in one transaction. The completed_at stamp guarantees a
// session pays out at most once.
func (s *speakingService) completeSession(userID uint, session *model.ConversationSession, scores model.SessionScores) (int, int, error) {
	duration := int(time.Since(session.CreatedAt).Seconds())
	xp := s.xpService.CalculateSpeakingXP(
		average(scores.Fluency),
		average(scores.Grammar),
		average(scores.Vocabulary),
		duration,
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		user, err := userRepo.FindByIDForUpdate(userID)
		if err != nil {
			return fmt.Errorf("user %d not found: %w", userID, err)
		}
		user.XPTotal += xp
		if err := userRepo.Update(user); err != nil {
			return fmt.Errorf("failed to award speaking XP: %w", err)
		}

		now := time.Now()
		session.CompletedAt = &now
		if err := s.conversationRepo.WithTx(tx).Update(session); err != nil {
			return fmt.Errorf("failed to close session: %w", err)
		}

		sessions, err := s.conversationRepo.CountByUser(userID)
		if err != nil {
			return fmt.Errorf("failed to count sessions: %w", err)
		}
		_, err = s.achievementsSvc.WithTx(tx).CheckAchievements(userID, UserStats{
			XPTotal:          user.XPTotal,
			CurrentStreak:    user.CurrentStreak,
			SpeakingSessions: sessions,
		}, ActivityEvent{Kind: "speaking"})
		return err
	})
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("Speaking session completion failed")
		return 0, 0, err
	}
	return xp, duration, nil
}

func scenarioContext(scenarioID *uint) string {
	if scenarioID == nil {
		return ""
	}
	for _, sc := range roleplayScenarios {
		if sc.ID == *scenarioID {
			return sc.Context
		}
	}
	return ""
}

func userLevelOrDefault(user *model.User) model.CEFRLevel {
	if user.CEFRLevel == nil {
		return model.LevelA1
	}
	return *user.CEFRLevel
}

func learnerTurns(messages []model.ConversationMessage) int {
	count := 0
	for _, m := range messages {
		if !m.IsAI {
			count++
		}
	}
	return count
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
