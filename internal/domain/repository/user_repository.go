package repository

import (
	"context"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
)

// UserRepository persists platform users keyed by the external identity
// provider ID. Profile fields are owned by the provider and arrive through
// sync upserts; the role is owned by the platform and must survive them.
type UserRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*entity.User, error)
	// Upsert inserts or replaces the profile fields of the user identified
	// by ExternalID, writing Role exactly as passed. Callers decide role
	// preservation before calling.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateRole(ctx context.Context, externalID string, role entity.UserRole) (*entity.User, error)
	DeleteByExternalID(ctx context.Context, externalID string) error
	List(ctx context.Context, page, limit int) ([]*entity.User, int64, error)
	CountByRole(ctx context.Context, role entity.UserRole) (int64, error)
}
