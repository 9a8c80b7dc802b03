package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// UserRepository is the mongo implementation of repository.UserRepository.
type UserRepository struct {
	client *Client
}

// NewUserRepository creates the repository over the users collection.
func NewUserRepository(client *Client) repository.UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.client.Collection(CollectionUsers)
}

// GetByExternalID fetches a user by identity-provider ID.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.User, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	var user entity.User
	err := r.collection().FindOne(opCtx, bson.M{"externalId": externalID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}
	return &user, nil
}

// Upsert inserts or updates the user keyed on ExternalID. Role is written
// exactly as passed; preserving an existing role across profile syncs is the
// caller's decision.
func (r *UserRepository) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
			"imageUrl":  user.ImageURL,
			"role":      user.Role,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       uuid.New().String(),
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var updated entity.User
	err := r.collection().
		FindOneAndUpdate(opCtx, bson.M{"externalId": user.ExternalID}, update, opts).
		Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &updated, nil
}

// UpdateRole writes the role and refreshes UpdatedAt.
func (r *UserRepository) UpdateRole(ctx context.Context, externalID string, role entity.UserRole) (*entity.User, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.User
	err := r.collection().
		FindOneAndUpdate(opCtx, bson.M{"externalId": externalID}, update, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return &updated, nil
}

// DeleteByExternalID removes the user record after an identity deletion.
func (r *UserRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	if _, err := r.collection().DeleteOne(opCtx, bson.M{"externalId": externalID}); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// List returns users newest first with pagination.
func (r *UserRepository) List(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	total, err := r.collection().CountDocuments(opCtx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(opCtx)

	var users []*entity.User
	if err := cursor.All(opCtx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

// CountByRole counts users holding the given role.
func (r *UserRepository) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	opCtx, cancel := r.client.opContext(ctx)
	defer cancel()

	count, err := r.collection().CountDocuments(opCtx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
