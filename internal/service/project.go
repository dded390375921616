package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"projecthub/internal/models"
	"projecthub/internal/repository"
	"projecthub/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProjectInput holds the details of a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	City        string
	Country     string
	StartDate   time.Time
	EndDate     time.Time
}

type ProjectService interface {
	Create(ownerID string, in *CreateProjectInput) (string, error)
	AddMembers(projectID, ownerID string, emails []string) (string, error)
	List(ownerID string, page, pageSize int) ([]models.ProjectInfo, error)
	ListMembers(projectID, ownerID string) ([]models.ProjectMember, error)
	AddDocuments(ctx context.Context, projectID string, files []*multipart.FileHeader) ([]string, error)
}

type projectService struct {
	repo   repository.ProjectRepository
	store  storage.Storage
	logger *zap.Logger
}

func NewProjectService(repo repository.ProjectRepository, store storage.Storage, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, store: store, logger: logger}
}

func (s *projectService) Create(ownerID string, in *CreateProjectInput) (string, error) {
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		City:        in.City,
		Country:     in.Country,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      models.StatusUpcoming,
		OwnerID:     ownerID,
	}

	err := s.repo.Create(project)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return "", ErrAlreadyExists
		}
		s.logger.Error("Failed to create project", zap.Error(err))
		return "", fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", zap.String("id", project.ID), zap.String("owner_id", ownerID))
	return project.ID, nil
}

// AddMembers records one batch of invited emails. The caller must own the
// project; anything else reads as a missing project.
func (s *projectService) AddMembers(projectID, ownerID string, emails []string) (string, error) {
	owned, err := s.repo.IsOwnedBy(projectID, ownerID)
	if err != nil {
		s.logger.Error("Failed to check project ownership", zap.Error(err))
		return "", fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !owned {
		return "", ErrNotFound
	}

	member := &models.ProjectMember{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		EmailIDs:  emails,
	}

	err = s.repo.AddMembers(member)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return "", ErrAlreadyExists
		}
		s.logger.Error("Failed to add project members", zap.Error(err))
		return "", fmt.Errorf("failed to add project members: %w", err)
	}

	return member.ID, nil
}

func (s *projectService) List(ownerID string, page, pageSize int) ([]models.ProjectInfo, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	offset := (page - 1) * pageSize
	projects, err := s.repo.ListByOwner(ownerID, offset, pageSize)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) ListMembers(projectID, ownerID string) ([]models.ProjectMember, error) {
	owned, err := s.repo.IsOwnedBy(projectID, ownerID)
	if err != nil {
		s.logger.Error("Failed to check project ownership", zap.Error(err))
		return nil, fmt.Errorf("failed to check project ownership: %w", err)
	}
	if !owned {
		return nil, ErrNotFound
	}

	members, err := s.repo.ListMembers(projectID, ownerID)
	if err != nil {
		s.logger.Error("Failed to list project members", zap.Error(err))
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	return members, nil
}

// AddDocuments stores each file and records its path. The project must exist
// before any file is written. A file is written before its row is inserted;
// if the insert fails the file is removed again so neither side is left
// half-done, and the whole call fails.
func (s *projectService) AddDocuments(ctx context.Context, projectID string, files []*multipart.FileHeader) ([]string, error) {
	exists, err := s.repo.Exists(projectID)
	if err != nil {
		s.logger.Error("Failed to check project existence", zap.Error(err))
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	ids := make([]string, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}

		key := storage.BuildKey(file.Filename)
		path, err := s.store.Save(ctx, key, src)
		src.Close()
		if err != nil {
			s.logger.Error("Failed to store document", zap.String("filename", file.Filename), zap.Error(err))
			return nil, fmt.Errorf("failed to store document: %w", err)
		}

		document := &models.ProjectDocument{
			ID:           uuid.NewString(),
			ProjectID:    projectID,
			DocumentPath: path,
		}

		if err := s.repo.AddDocument(document); err != nil {
			if removeErr := s.store.Remove(ctx, key); removeErr != nil {
				s.logger.Warn("Failed to remove orphaned file",
					zap.String("key", key), zap.Error(removeErr))
			}
			s.logger.Error("Failed to insert document row", zap.Error(err))
			return nil, fmt.Errorf("failed to insert document row: %w", err)
		}

		ids = append(ids, document.ID)
	}

	return ids, nil
}
