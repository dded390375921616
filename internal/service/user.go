package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"projecthub/internal/models"
	"projecthub/internal/repository"
	"projecthub/internal/storage"

	"go.uber.org/zap"
)

type UserService interface {
	GetByID(id string) (*models.UserInfoExtended, error)
	List(page, pageSize int) ([]models.UserInfoExtended, error)
	UpdateWithImage(ctx context.Context, id string, upd *models.UserUpdate, file *multipart.FileHeader) error
}

type userService struct {
	repo   repository.UserRepository
	store  storage.Storage
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, store storage.Storage, logger *zap.Logger) UserService {
	return &userService{repo: repo, store: store, logger: logger}
}

func (s *userService) GetByID(id string) (*models.UserInfoExtended, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error("Failed to get user by id", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// List returns one page of users. A page past the end is an empty list, not
// an error.
func (s *userService) List(page, pageSize int) ([]models.UserInfoExtended, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize
	users, err := s.repo.List(offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateWithImage applies the partial update, storing the uploaded profile
// picture first when one is present.
func (s *userService) UpdateWithImage(ctx context.Context, id string, upd *models.UserUpdate, file *multipart.FileHeader) error {
	if upd.Email != nil {
		lowered := strings.ToLower(*upd.Email)
		upd.Email = &lowered
	}
	if upd.Role != nil && !models.ValidRole(*upd.Role) {
		return ErrInvalidRole
	}

	if file != nil {
		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		key := storage.BuildKey(file.Filename)
		path, err := s.store.Save(ctx, key, src)
		if err != nil {
			s.logger.Error("Failed to store profile picture", zap.Error(err))
			return fmt.Errorf("failed to store profile picture: %w", err)
		}
		upd.ProfilePicture = &path
	}

	err := s.repo.Update(id, upd)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Error("Failed to update user", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}
