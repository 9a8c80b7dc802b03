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

// CommentService handles comment submission and the viewer-dependent
// listing policy.
type CommentService struct {
	comments repository.CommentRepository
	projects repository.ProjectRepository
	authz    Authorizer
	logger   *zap.Logger
}

// NewCommentService creates the comment service.
func NewCommentService(comments repository.CommentRepository, projects repository.ProjectRepository, authz Authorizer, logger *zap.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		projects: projects,
		authz:    authz,
		logger:   logger.Named("comments"),
	}
}

// Submit stores a new comment in the pending state.
func (s *CommentService) Submit(ctx context.Context, userID, userName, projectID, content string) (*entity.Comment, error) {
	if userID == "" {
		return nil, domainErrors.NewUnauthorizedError("caller identity is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, domainErrors.NewValidationError("comment content is required", domainErrors.ErrInvalidInput)
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("project not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to load project", err)
	}

	now := time.Now().UTC()
	comment := &entity.Comment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		UserName:  userName,
		Content:   strings.TrimSpace(content),
		Status:    entity.CommentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, domainErrors.NewPersistenceError("failed to store comment", err)
	}

	s.logger.Info("comment submitted",
		zap.String("comment_id", comment.ID),
		zap.String("project_id", projectID),
	)
	return comment, nil
}

// ListForProject returns the project's comments filtered by what the viewer
// may see. Admins and the project owner see every status; everyone else,
// including anonymous viewers, sees only approved comments. The decision is
// made per request, never stored.
func (s *CommentService) ListForProject(ctx context.Context, viewerID, projectID string) ([]*entity.Comment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("project not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to load project", err)
	}

	canViewAll := false
	if viewerID != "" {
		canViewAll = project.UserID == viewerID || s.authz.IsAuthorizedAdmin(ctx, viewerID)
	}

	comments, err := s.comments.ListByProject(ctx, projectID, !canViewAll)
	if err != nil {
		return nil, domainErrors.NewPersistenceError("failed to list comments", err)
	}
	return comments, nil
}

// ListPending returns the moderation queue.
func (s *CommentService) ListPending(ctx context.Context) ([]*entity.Comment, error) {
	comments, err := s.comments.ListPending(ctx)
	if err != nil {
		return nil, domainErrors.NewPersistenceError("failed to list pending comments", err)
	}
	return comments, nil
}
