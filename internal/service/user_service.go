package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Lingora/internal/dto"
	"github.com/lshigami/Lingora/internal/model"
	"github.com/lshigami/Lingora/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrEmailTaken means registration hit an existing account.
var ErrEmailTaken = errors.New("email is already registered")

type UserService interface {
	Register(req dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(userID uint) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &model.User{Email: req.Email, Name: req.Name}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Uint("user_id", user.ID).Msg("User registered")
	return userToResponse(user)
}

func (s *userService) GetUser(userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %d not found: %w", userID, err)
	}
	return userToResponse(user)
}

func userToResponse(user *model.User) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("failed to map user: %w", err)
	}
	if user.CEFRLevel != nil {
		level := string(*user.CEFRLevel)
		resp.CEFRLevel = &level
	}
	return &resp, nil
}
