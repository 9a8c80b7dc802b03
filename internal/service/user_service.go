package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// Identity event types delivered by the provider's webhook.
const (
	IdentityEventCreated = "user.created"
	IdentityEventUpdated = "user.updated"
	IdentityEventDeleted = "user.deleted"
)

// IdentityEvent is a profile sync event from the external identity
// provider.
type IdentityEvent struct {
	Type       string
	ExternalID string
	FirstName  string
	LastName   string
	Email      string
	ImageURL   string
}

// UserService mirrors the identity provider's user directory into the
// store. The provider owns profile fields; the platform owns roles, which
// must survive profile syncs untouched.
type UserService struct {
	users  repository.UserRepository
	roles  RoleCache
	logger *zap.Logger
}

// NewUserService creates the user sync service.
func NewUserService(users repository.UserRepository, roles RoleCache, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		logger: logger.Named("users"),
	}
}

// SyncFromIdentityProvider applies a webhook event. Created and updated
// events upsert the profile keyed on the external ID, preserving any role
// the platform has assigned; deleted events remove the record.
func (s *UserService) SyncFromIdentityProvider(ctx context.Context, event IdentityEvent) error {
	if event.ExternalID == "" {
		return domainErrors.NewValidationError("identity event without external id", domainErrors.ErrInvalidInput)
	}

	switch event.Type {
	case IdentityEventCreated, IdentityEventUpdated:
		role := entity.RoleUser
		existing, err := s.users.GetByExternalID(ctx, event.ExternalID)
		if err == nil {
			role = existing.Role
		} else if !domainErrors.IsNotFound(err) {
			return domainErrors.NewPersistenceError("failed to load user for sync", err)
		}

		user := &entity.User{
			ExternalID: event.ExternalID,
			FirstName:  event.FirstName,
			LastName:   event.LastName,
			Email:      event.Email,
			ImageURL:   event.ImageURL,
			Role:       role,
		}
		if _, err := s.users.Upsert(ctx, user); err != nil {
			return domainErrors.NewPersistenceError("failed to sync user", err)
		}
		s.roles.Set(ctx, event.ExternalID, role)

		s.logger.Info("user synced",
			zap.String("external_id", event.ExternalID),
			zap.String("event", event.Type),
		)
		return nil

	case IdentityEventDeleted:
		if err := s.users.DeleteByExternalID(ctx, event.ExternalID); err != nil {
			return domainErrors.NewPersistenceError("failed to delete user", err)
		}
		s.roles.Invalidate(ctx, event.ExternalID)

		s.logger.Info("user deleted", zap.String("external_id", event.ExternalID))
		return nil

	default:
		// Unknown event types are ignored so new provider events do not
		// break the webhook.
		s.logger.Debug("ignoring identity event", zap.String("event", event.Type))
		return nil
	}
}

// Get fetches a user by external identity.
func (s *UserService) Get(ctx context.Context, externalID string) (*entity.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("user not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to load user", err)
	}
	return user, nil
}

// List returns users newest first; admin dashboard listing.
func (s *UserService) List(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, 0, domainErrors.NewPersistenceError("failed to list users", err)
	}
	return users, total, nil
}
