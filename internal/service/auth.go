package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"projecthub/internal/models"
	"projecthub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// RegisterInput is the registration payload after transport-level validation.
type RegisterInput struct {
	FirstName string
	LastName  *string
	Username  string
	Email     string
	Password  string
	Role      string
}

type AuthService interface {
	Register(in *RegisterInput) (string, error)
	Login(identifier, password string) (string, error)
}

type authService struct {
	repo     repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(repo repository.UserRepository, secret []byte, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates a user account and returns its id. A username or email
// collision yields ErrAlreadyExists.
func (s *authService) Register(in *RegisterInput) (string, error) {
	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return "", ErrInvalidRole
	}

	passwordHash, err := HashPassword(in.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     strings.ToLower(in.Email),
		Password:  passwordHash,
		Role:      role,
	}

	err = s.repo.Create(user)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return "", ErrAlreadyExists
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("id", user.ID), zap.String("username", user.Username))
	return user.ID, nil
}

// Login authenticates by username or email and returns a signed session
// token. The identifier is matched case-insensitively against emails.
func (s *authService) Login(identifier, password string) (string, error) {
	user, err := s.repo.GetByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		s.logger.Error("Failed to get user by identifier", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return token, nil
}
