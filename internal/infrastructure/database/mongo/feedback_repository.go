package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// FeedbackRepository is the mongo implementation of
// repository.FeedbackRepository.
type FeedbackRepository struct {
	client *Client
}

// NewFeedbackRepository creates the repository over the feedback collection.
func NewFeedbackRepository(client *Client) repository.FeedbackRepository {
	return &FeedbackRepository{client: client}
}

func (r *FeedbackRepository) collection() *mongo.Collection {
	return r.client.Collection(CollectionFeedback)
}

// Create stores a new hazard report.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	if _, err := r.collection().InsertOne(opCtx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByID fetches a single report.
func (r *FeedbackRepository) GetByID(ctx context.Context, id string) (*entity.Feedback, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	var feedback entity.Feedback
	err := r.collection().FindOne(opCtx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}

// UpdateStatus applies a status change and refreshes UpdatedAt.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id string, status entity.FeedbackStatus, adminComment string) (*entity.Feedback, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if adminComment != "" {
		set["adminComment"] = adminComment
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Feedback
	err := r.collection().
		FindOneAndUpdate(opCtx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to update feedback status: %w", err)
	}
	return &updated, nil
}

// List returns reports matching the filter, newest first.
func (r *FeedbackRepository) List(ctx context.Context, filter repository.FeedbackFilter) ([]*entity.Feedback, int64, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}

	total, err := r.collection().CountDocuments(opCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection().Find(opCtx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer cursor.Close(opCtx)

	var reports []*entity.Feedback
	if err := cursor.All(opCtx, &reports); err != nil {
		return nil, 0, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return reports, total, nil
}

// ListByUser returns the caller's own reports, newest first.
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Feedback, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection().Find(opCtx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user feedback: %w", err)
	}
	defer cursor.Close(opCtx)

	var reports []*entity.Feedback
	if err := cursor.All(opCtx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode user feedback: %w", err)
	}
	return reports, nil
}
