package repository

import (
	"github.com/lshigami/Lingora/internal/model"
	"gorm.io/gorm"
)

type ConversationRepository interface {
	Create(session *model.ConversationSession) error
	FindByIDAndUser(id, userID uint) (*model.ConversationSession, error)
	Update(session *model.ConversationSession) error
	CountByUser(userID uint) (int64, error)
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) ConversationRepository
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) WithTx(tx *gorm.DB) ConversationRepository {
	return &conversationRepository{db: tx}
}

func (r *conversationRepository) Create(session *model.ConversationSession) error {
	return r.db.Create(session).Error
}

func (r *conversationRepository) FindByIDAndUser(id, userID uint) (*model.ConversationSession, error) {
	var session model.ConversationSession
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *conversationRepository) Update(session *model.ConversationSession) error {
	return r.db.Save(session).Error
}

func (r *conversationRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.ConversationSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
