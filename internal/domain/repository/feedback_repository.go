package repository

import (
	"context"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// FeedbackFilter narrows admin feedback listings.
type FeedbackFilter struct {
	Status   entity.FeedbackStatus
	Severity entity.FeedbackSeverity
	Page     int
	Limit    int
}

// FeedbackRepository persists hazard reports.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	UpdateStatus(ctx context.Context, id string, status entity.FeedbackStatus, adminComment string) (*entity.Feedback, error)
	List(ctx context.Context, filter FeedbackFilter) ([]*entity.Feedback, int64, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Feedback, error)
}
