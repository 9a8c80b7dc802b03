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

// ProjectRepository is the mongo implementation of
// repository.ProjectRepository.
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository creates the repository over the projects collection.
func NewProjectRepository(client *Client) repository.ProjectRepository {
	return &ProjectRepository{client: client}
}

func (r *ProjectRepository) collection() *mongo.Collection {
	return r.client.Collection(CollectionProjects)
}

// Create stores a new proposal.
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	if _, err := r.collection().InsertOne(opCtx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID fetches a single project.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	var project entity.Project
	err := r.collection().FindOne(opCtx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// UpdateStatus applies a moderation decision and refreshes UpdatedAt.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus, adminComment string) (*entity.Project, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if adminComment != "" {
		set["adminComment"] = adminComment
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Project
	err := r.collection().
		FindOneAndUpdate(opCtx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	return &updated, nil
}

// List returns projects matching the filter, newest first.
func (r *ProjectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int64, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Visibility != "" {
		query["visibility"] = filter.Visibility
	}

	total, err := r.collection().CountDocuments(opCtx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection().Find(opCtx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(opCtx)

	var projects []*entity.Project
	if err := cursor.All(opCtx, &projects); err != nil {
		return nil, 0, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, total, nil
}

// ListByUser returns the caller's own proposals, newest first.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection().Find(opCtx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user projects: %w", err)
	}
	defer cursor.Close(opCtx)

	var projects []*entity.Project
	if err := cursor.All(opCtx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode user projects: %w", err)
	}
	return projects, nil
}

// ListPublic returns approved, publicly visible projects.
func (r *ProjectRepository) ListPublic(ctx context.Context, page, limit int) ([]*entity.Project, int64, error) {
	return r.List(ctx, repository.ProjectFilter{
		Status:     entity.ProjectStatusApproved,
		Visibility: entity.VisibilityPublic,
		Page:       page,
		Limit:      limit,
	})
}
