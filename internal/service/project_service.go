package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// SubmitProjectInput is a citizen proposal submission.
type SubmitProjectInput struct {
	Title        string
	Description  string
	Category     entity.ProjectCategory
	Location     string
	Budget       float64
	Timeline     string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Visibility   entity.ProjectVisibility
}

// ProjectService handles proposal submission and listing. Submissions
// always enter the workflow as pending regardless of what the caller sends.
type ProjectService struct {
	projects repository.ProjectRepository
	logger   *zap.Logger
}

// NewProjectService creates the project service.
func NewProjectService(projects repository.ProjectRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		projects: projects,
		logger:   logger.Named("projects"),
	}
}

func (s *ProjectService) validate(in SubmitProjectInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return domainErrors.NewValidationError("title is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.Description) == "":
		return domainErrors.NewValidationError("description is required", domainErrors.ErrInvalidInput)
	case !in.Category.IsValid():
		return domainErrors.NewValidationError("invalid category", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.Location) == "":
		return domainErrors.NewValidationError("location is required", domainErrors.ErrInvalidInput)
	case in.Budget < 0:
		return domainErrors.NewValidationError("budget must be non-negative", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.Timeline) == "":
		return domainErrors.NewValidationError("timeline is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.ContactName) == "":
		return domainErrors.NewValidationError("contact name is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.ContactEmail) == "":
		return domainErrors.NewValidationError("contact email is required", domainErrors.ErrInvalidInput)
	}
	if in.Visibility != "" && !in.Visibility.IsValid() {
		return domainErrors.NewValidationError("invalid visibility", domainErrors.ErrInvalidInput)
	}
	return nil
}

// Submit validates and stores a new proposal owned by the caller.
func (s *ProjectService) Submit(ctx context.Context, ownerID, ownerEmail string, in SubmitProjectInput) (*entity.Project, error) {
	if ownerID == "" {
		return nil, domainErrors.NewUnauthorizedError("caller identity is required")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = entity.VisibilityModerated
	}

	now := time.Now().UTC()
	project := &entity.Project{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Location:     strings.TrimSpace(in.Location),
		Budget:       in.Budget,
		Timeline:     strings.TrimSpace(in.Timeline),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		UserID:       ownerID,
		UserEmail:    ownerEmail,
		Visibility:   visibility,
		Status:       entity.ProjectStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, domainErrors.NewPersistenceError("failed to store project", err)
	}

	s.logger.Info("project submitted",
		zap.String("project_id", project.ID),
		zap.String("owner_id", ownerID),
		zap.String("category", string(project.Category)),
	)
	return project, nil
}

// Get fetches a single project.
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("project not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to load project", err)
	}
	return project, nil
}

// ListPublic returns approved public projects with pagination.
func (s *ProjectService) ListPublic(ctx context.Context, page, limit int) ([]*entity.Project, int64, error) {
	projects, total, err := s.projects.ListPublic(ctx, page, limit)
	if err != nil {
		return nil, 0, domainErrors.NewPersistenceError("failed to list public projects", err)
	}
	return projects, total, nil
}

// ListForUser returns the caller's own proposals in every status.
func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainErrors.NewPersistenceError("failed to list user projects", err)
	}
	return projects, nil
}

// ListAll returns projects matching the filter; admin dashboard listing.
func (s *ProjectService) ListAll(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domainErrors.NewValidationError("invalid status filter", domainErrors.ErrInvalidStatus)
	}
	projects, total, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, 0, domainErrors.NewPersistenceError("failed to list projects", err)
	}
	return projects, total, nil
}
