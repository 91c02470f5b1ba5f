package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"portfolio-backend/internal/model"
	"portfolio-backend/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	publisher ActivityPublisher
}

type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
}

type UpdateProfileInput struct {
	UserID      uint
	DisplayName *string
	AvatarURL   *string
	NewPassword *string
}

func NewAuthService(userRepo *repository.UserRepository, publisher ActivityPublisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.publish(model.ActivityEvent{Type: model.ActivityUserRegistered, UserID: user.ID})
	return user, nil
}

// Login reports the same failure for an unknown username and a wrong
// password, so responses do not reveal which one was at fault.
func (s *AuthService) Login(username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// UpdateProfile applies the present fields from the enumerated updatable set.
// An empty field set is a no-op success returning the current profile.
func (s *AuthService) UpdateProfile(input UpdateProfileInput) (*model.User, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	columns := map[string]interface{}{}
	if input.DisplayName != nil {
		columns["display_name"] = *input.DisplayName
	}
	if input.AvatarURL != nil {
		columns["avatar_url"] = *input.AvatarURL
	}
	if input.NewPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		columns["password_hash"] = string(hash)
	}

	if len(columns) == 0 {
		return user, nil
	}

	if err := s.userRepo.UpdateColumns(input.UserID, columns); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(input.UserID)
}

func (s *AuthService) publish(event model.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), event)
}
