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

// CommentRepository is the mongo implementation of
// repository.CommentRepository.
type CommentRepository struct {
	client *Client
}

// NewCommentRepository creates the repository over the comments collection.
func NewCommentRepository(client *Client) repository.CommentRepository {
	return &CommentRepository{client: client}
}

func (r *CommentRepository) collection() *mongo.Collection {
	return r.client.Collection(CollectionComments)
}

// Create stores a new comment.
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	if _, err := r.collection().InsertOne(opCtx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID fetches a single comment.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	var comment entity.Comment
	err := r.collection().FindOne(opCtx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// UpdateStatus applies a moderation decision and refreshes UpdatedAt.
func (r *CommentRepository) UpdateStatus(ctx context.Context, id string, status entity.CommentStatus) (*entity.Comment, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Comment
	err := r.collection().
		FindOneAndUpdate(opCtx, bson.M{"_id": id}, update, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment status: %w", err)
	}
	return &updated, nil
}

// ListByProject returns a project's comments, newest first.
func (r *CommentRepository) ListByProject(ctx context.Context, projectID string, approvedOnly bool) ([]*entity.Comment, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	query := bson.M{"projectId": projectID}
	if approvedOnly {
		query["status"] = entity.CommentStatusApproved
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection().Find(opCtx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(opCtx)

	var comments []*entity.Comment
	if err := cursor.All(opCtx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// ListPending returns all comments awaiting moderation, oldest first so the
// moderation queue is worked in arrival order.
func (r *CommentRepository) ListPending(ctx context.Context) ([]*entity.Comment, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := r.collection().Find(opCtx, bson.M{"status": entity.CommentStatusPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending comments: %w", err)
	}
	defer cursor.Close(opCtx)

	var comments []*entity.Comment
	if err := cursor.All(opCtx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode pending comments: %w", err)
	}
	return comments, nil
}
