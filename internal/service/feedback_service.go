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

// SubmitFeedbackInput is a citizen hazard report submission.
type SubmitFeedbackInput struct {
	Title       string
	Description string
	Address     string
	Lat         float64
	Lng         float64
	ImageURL    string
	Severity    entity.FeedbackSeverity
}

// FeedbackService handles hazard report submission and listing.
type FeedbackService struct {
	feedback repository.FeedbackRepository
	logger   *zap.Logger
}

// NewFeedbackService creates the feedback service.
func NewFeedbackService(feedback repository.FeedbackRepository, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		logger:   logger.Named("feedback"),
	}
}

// Submit validates and stores a new hazard report, status pending and
// severity defaulting to medium.
func (s *FeedbackService) Submit(ctx context.Context, ownerID, ownerEmail string, in SubmitFeedbackInput) (*entity.Feedback, error) {
	if ownerID == "" {
		return nil, domainErrors.NewUnauthorizedError("caller identity is required")
	}
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, domainErrors.NewValidationError("title is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.Description) == "":
		return nil, domainErrors.NewValidationError("description is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.Address) == "":
		return nil, domainErrors.NewValidationError("address is required", domainErrors.ErrInvalidInput)
	case strings.TrimSpace(in.ImageURL) == "":
		return nil, domainErrors.NewValidationError("image is required", domainErrors.ErrInvalidInput)
	}

	severity := in.Severity
	if severity == "" {
		severity = entity.SeverityMedium
	}
	if !severity.IsValid() {
		return nil, domainErrors.NewValidationError("invalid severity", domainErrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	feedback := &entity.Feedback{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location: entity.FeedbackLocation{
			Address:     strings.TrimSpace(in.Address),
			Coordinates: entity.Coordinates{Lat: in.Lat, Lng: in.Lng},
		},
		ImageURL:  strings.TrimSpace(in.ImageURL),
		UserID:    ownerID,
		UserEmail: ownerEmail,
		Severity:  severity,
		Status:    entity.FeedbackStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, domainErrors.NewPersistenceError("failed to store feedback", err)
	}

	s.logger.Info("feedback submitted",
		zap.String("feedback_id", feedback.ID),
		zap.String("severity", string(severity)),
	)
	return feedback, nil
}

// ListForUser returns the caller's own reports.
func (s *FeedbackService) ListForUser(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	reports, err := s.feedback.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainErrors.NewPersistenceError("failed to list user feedback", err)
	}
	return reports, nil
}

// ListAll returns reports matching the filter; admin dashboard listing.
func (s *FeedbackService) ListAll(ctx context.Context, filter repository.FeedbackFilter) ([]*entity.Feedback, int64, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, domainErrors.NewValidationError("invalid status filter", domainErrors.ErrInvalidStatus)
	}
	if filter.Severity != "" && !filter.Severity.IsValid() {
		return nil, 0, domainErrors.NewValidationError("invalid severity filter", domainErrors.ErrInvalidInput)
	}
	reports, total, err := s.feedback.List(ctx, filter)
	if err != nil {
		return nil, 0, domainErrors.NewPersistenceError("failed to list feedback", err)
	}
	return reports, total, nil
}
