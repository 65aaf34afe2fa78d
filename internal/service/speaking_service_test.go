package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryConversationRepo struct {
	sessions map[uint]model.ConversationSession
	nextID   uint
}

func newMemoryConversationRepo() *memoryConversationRepo {
	return &memoryConversationRepo{sessions: make(map[uint]model.ConversationSession)}
}

func (r *memoryConversationRepo) Create(s *model.ConversationSession) error {
	r.nextID++
	s.ID = r.nextID
	r.sessions[s.ID] = *s
	return nil
}

func (r *memoryConversationRepo) FindByIDAndUser(id, userID uint) (*model.ConversationSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := s
	return &copied, nil
}

func (r *memoryConversationRepo) Update(s *model.ConversationSession) error {
	r.sessions[s.ID] = *s
	return nil
}

func (r *memoryConversationRepo) CountByUser(userID uint) (int64, error) {
	var count int64
	for _, s := range r.sessions {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memoryConversationRepo) WithTx(tx *gorm.DB) repository.ConversationRepository { return r }

func seedSpeakingSession(t *testing.T, repo *memoryConversationRepo, userID uint, learnerTurns int) uint {
	t.Helper()

	var messages []model.ConversationMessage
	messages = append(messages, model.ConversationMessage{IsAI: true, Text: "Hi!"})
	for i := 0; i < learnerTurns; i++ {
		messages = append(messages, model.ConversationMessage{Text: "a turn"})
		messages = append(messages, model.ConversationMessage{IsAI: true, Text: "a reply"})
	}
	serializedMessages, err := json.Marshal(messages)
	require.NoError(t, err)
	serializedScores, err := json.Marshal(model.SessionScores{
		Fluency:    []float64{80},
		Grammar:    []float64{70},
		Vocabulary: []float64{90},
	})
	require.NoError(t, err)

	session := &model.ConversationSession{
		UserID:      userID,
		SessionType: model.SessionTypeFreeTalk,
		Messages:    serializedMessages,
		Scores:      serializedScores,
	}
	require.NoError(t, repo.Create(session))

	// Backdate the start so the duration XP component is predictable.
	session.CreatedAt = time.Now().Add(-100 * time.Second)
	require.NoError(t, repo.Update(session))
	return session.ID
}

func newSpeakingServiceForTest(conversations *memoryConversationRepo, users *memoryUserRepo, achievements *memoryAchievementRepo) SpeakingService {
	return &speakingService{
		conversationRepo: conversations,
		userRepo:         users,
		xpService:        NewXPService(testConfig()),
		achievementsSvc:  NewAchievementService(achievements),
		db:               fakeTx{},
	}
}

func TestEndSessionAwardsXPAndClosesSession(t *testing.T) {
	conversations := newMemoryConversationRepo()
	users := &memoryUserRepo{users: map[uint]model.User{1: {ID: 1, XPTotal: 100}}}
	achievements := &memoryAchievementRepo{}
	svc := newSpeakingServiceForTest(conversations, users, achievements)
	sessionID := seedSpeakingSession(t, conversations, 1, 3)

	resp, err := svc.EndSession(1, sessionID)
	require.NoError(t, err)

	// avg(80,70,90)=80 -> 32 score XP, 100s -> 3 duration XP, 40 base.
	assert.Equal(t, 75, resp.XPEarned)
	assert.Equal(t, 3, resp.MessageCount)
	assert.Equal(t, dto.TurnScores{Fluency: 80, Grammar: 70, Vocabulary: 90}, resp.FinalScores)
	assert.Equal(t, 175, users.users[1].XPTotal)
	assert.NotNil(t, conversations.sessions[sessionID].CompletedAt)

	badges, err := achievements.FindBadgeTypesByUser(1)
	require.NoError(t, err)
	assert.Contains(t, badges, model.BadgeFirstSpeaking)
}

func TestEndSessionPaysOutOnlyOnce(t *testing.T) {
	conversations := newMemoryConversationRepo()
	users := &memoryUserRepo{users: map[uint]model.User{1: {ID: 1}}}
	svc := newSpeakingServiceForTest(conversations, users, &memoryAchievementRepo{})
	sessionID := seedSpeakingSession(t, conversations, 1, 3)

	first, err := svc.EndSession(1, sessionID)
	require.NoError(t, err)

	_, err = svc.EndSession(1, sessionID)
	assert.ErrorIs(t, err, ErrSessionCompleted)
	assert.Equal(t, first.XPEarned, users.users[1].XPTotal)
}

func TestSubmitTurnRejectsCompletedSession(t *testing.T) {
	conversations := newMemoryConversationRepo()
	users := &memoryUserRepo{users: map[uint]model.User{1: {ID: 1}}}
	svc := newSpeakingServiceForTest(conversations, users, &memoryAchievementRepo{})
	sessionID := seedSpeakingSession(t, conversations, 1, 5)

	_, err := svc.EndSession(1, sessionID)
	require.NoError(t, err)

	_, err = svc.SubmitTurn(context.Background(), 1, sessionID, dto.SpeakingTurnRequest{Text: "one more"})
	assert.ErrorIs(t, err, ErrSessionCompleted)
}
