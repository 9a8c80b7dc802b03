package repository

import (
	"context"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// ProjectFilter narrows admin project listings.
type ProjectFilter struct {
	Status     entity.ProjectStatus
	Category   entity.ProjectCategory
	Visibility entity.ProjectVisibility
	Page       int
	Limit      int
}

// ProjectRepository persists project proposals. Projects are never
// hard-deleted; the moderation workflow is the only mutation path after
// creation.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// UpdateStatus writes the status, the optional admin comment and a fresh
	// UpdatedAt, returning the updated document.
	UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus, adminComment string) (*entity.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Project, error)
	ListPublic(ctx context.Context, page, limit int) ([]*entity.Project, int64, error)
}
