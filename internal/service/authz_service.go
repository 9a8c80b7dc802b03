package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// Authorizer is the access gate consulted before every administrative
// mutation.
type Authorizer interface {
	IsAuthorizedAdmin(ctx context.Context, identity string) bool
}

// RoleCache caches directory role lookups. Implementations must degrade to
// a miss on failure; the gate always has the directory as source of truth.
type RoleCache interface {
	Get(ctx context.Context, externalID string) (entity.UserRole, bool)
	Set(ctx context.Context, externalID string, role entity.UserRole)
	Invalidate(ctx context.Context, externalID string)
}

// nopRoleCache is used when redis is disabled.
type nopRoleCache struct{}

func (nopRoleCache) Get(context.Context, string) (entity.UserRole, bool) { return "", false }
func (nopRoleCache) Set(context.Context, string, entity.UserRole)        {}
func (nopRoleCache) Invalidate(context.Context, string)                  {}

// NewNopRoleCache returns a cache that never hits.
func NewNopRoleCache() RoleCache { return nopRoleCache{} }

// AuthzService decides administrative authorization by directory lookup: an
// identity is an admin iff its persisted user record holds the admin role.
// The configured bootstrap allow-list only matters while the directory has
// no admin at all; it is a seeding mechanism, not a parallel source of
// truth.
type AuthzService struct {
	users           repository.UserRepository
	roles           RoleCache
	bootstrapAdmins map[string]struct{}
	logger          *zap.Logger
}

// NewAuthzService creates the access gate.
func NewAuthzService(users repository.UserRepository, roles RoleCache, bootstrapAdmins []string, logger *zap.Logger) *AuthzService {
	allowed := make(map[string]struct{}, len(bootstrapAdmins))
	for _, id := range bootstrapAdmins {
		if id != "" {
			allowed[id] = struct{}{}
		}
	}
	return &AuthzService{
		users:           users,
		roles:           roles,
		bootstrapAdmins: allowed,
		logger:          logger.Named("authz"),
	}
}

// IsAuthorizedAdmin reports whether the identity may perform admin actions.
// The check is read-only and fails closed: any store failure denies.
func (s *AuthzService) IsAuthorizedAdmin(ctx context.Context, identity string) bool {
	if identity == "" {
		return false
	}

	if role, ok := s.roles.Get(ctx, identity); ok {
		return role == entity.RoleAdmin
	}

	user, err := s.users.GetByExternalID(ctx, identity)
	if err != nil {
		if !domainErrors.IsNotFound(err) {
			s.logger.Error("admin check failed, denying",
				zap.Error(err), zap.String("identity", identity))
		}
		return false
	}

	s.roles.Set(ctx, identity, user.Role)
	return user.IsAdmin()
}

// BootstrapFirstAdmin promotes the identity to admin, but only while the
// directory contains no admin and the identity is on the configured
// bootstrap list. Once any admin exists the list grants nothing.
func (s *AuthzService) BootstrapFirstAdmin(ctx context.Context, identity string) (*entity.User, error) {
	if _, ok := s.bootstrapAdmins[identity]; !ok {
		return nil, domainErrors.NewForbiddenError("identity is not eligible for admin bootstrap")
	}

	admins, err := s.users.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return nil, domainErrors.NewPersistenceError("failed to count admins", err)
	}
	if admins > 0 {
		return nil, domainErrors.NewConflictError("an admin already exists", domainErrors.ErrAdminExists)
	}

	user, err := s.users.UpdateRole(ctx, identity, entity.RoleAdmin)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("user not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to promote first admin", err)
	}

	s.roles.Invalidate(ctx, identity)
	s.logger.Info("first admin bootstrapped", zap.String("identity", identity))
	return user, nil
}
