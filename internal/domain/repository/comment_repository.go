package repository

import (
	"context"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// CommentRepository persists project comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	UpdateStatus(ctx context.Context, id string, status entity.CommentStatus) (*entity.Comment, error)
	// ListByProject returns comments newest first. When approvedOnly is set
	// only approved comments are returned; the viewer-dependent choice is
	// the caller's.
	ListByProject(ctx context.Context, projectID string, approvedOnly bool) ([]*entity.Comment, error)
	ListPending(ctx context.Context) ([]*entity.Comment, error)
}
