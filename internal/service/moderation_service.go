package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
	"github.com/harshl7081/ecowaste/internal/events"
)

// ModerationService validates and applies administrator status transitions
// to projects, comments, feedback reports and user roles. Every operation
// runs the access gate before touching state; persistence failures are
// surfaced to the caller, event publishing never is.
type ModerationService struct {
	authz     Authorizer
	projects  repository.ProjectRepository
	comments  repository.CommentRepository
	feedback  repository.FeedbackRepository
	users     repository.UserRepository
	roles     RoleCache
	publisher events.Publisher
	logger    *zap.Logger

	// roleMu serializes role changes so two concurrent demotions cannot
	// both pass the last-admin count. Instances of this service in other
	// processes are outside its reach; a stale count there only survives
	// until the next role change.
	roleMu sync.Mutex
}

// NewModerationService creates the moderation workflow service.
func NewModerationService(
	authz Authorizer,
	projects repository.ProjectRepository,
	comments repository.CommentRepository,
	feedback repository.FeedbackRepository,
	users repository.UserRepository,
	roles RoleCache,
	publisher events.Publisher,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		authz:     authz,
		projects:  projects,
		comments:  comments,
		feedback:  feedback,
		users:     users,
		roles:     roles,
		publisher: publisher,
		logger:    logger.Named("moderation"),
	}
}

func (s *ModerationService) requireAdmin(ctx context.Context, actorID string) error {
	if actorID == "" {
		return domainErrors.NewUnauthorizedError("caller identity is required")
	}
	if !s.authz.IsAuthorizedAdmin(ctx, actorID) {
		return domainErrors.NewForbiddenError("admin role required")
	}
	return nil
}

func (s *ModerationService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if err := s.publisher.Publish(ctx, eventType, subject, payload); err != nil {
		s.logger.Warn("failed to publish moderation event",
			zap.Error(err), zap.String("type", string(eventType)), zap.String("subject", subject))
	}
}

// SetProjectStatus applies a project moderation decision. Any status from
// the project enum may follow any other; admins are allowed to revert a
// decision back to pending.
func (s *ModerationService) SetProjectStatus(ctx context.Context, actorID, projectID string, status entity.ProjectStatus, adminComment string) (*entity.Project, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, domainErrors.NewValidationError(
			fmt.Sprintf("invalid project status %q", status), domainErrors.ErrInvalidStatus)
	}

	project, err := s.projects.UpdateStatus(ctx, projectID, status, adminComment)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("project not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to update project status", err)
	}

	s.logger.Info("project status updated",
		zap.String("project_id", projectID),
		zap.String("status", string(status)),
		zap.String("actor_id", actorID),
	)

	s.publish(ctx, events.EventProjectStatusChanged, projectID, events.ProjectStatusChanged{
		ProjectID:    project.ID,
		NewStatus:    string(status),
		AdminComment: adminComment,
		ActorID:      actorID,
		OwnerID:      project.UserID,
		OccurredAt:   time.Now().UTC(),
	})

	return project, nil
}

// ModerateComment approves or rejects a comment. Pending is never a valid
// decision, it is only the implicit creation state. Re-moderation is
// allowed; the last write wins.
func (s *ModerationService) ModerateComment(ctx context.Context, actorID, commentID string, status entity.CommentStatus) (*entity.Comment, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !status.IsModerationDecision() {
		return nil, domainErrors.NewValidationError(
			fmt.Sprintf("invalid moderation decision %q", status), domainErrors.ErrInvalidStatus)
	}

	comment, err := s.comments.UpdateStatus(ctx, commentID, status)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("comment not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to moderate comment", err)
	}

	s.logger.Info("comment moderated",
		zap.String("comment_id", commentID),
		zap.String("status", string(status)),
		zap.String("actor_id", actorID),
	)

	s.publish(ctx, events.EventCommentModerated, commentID, events.CommentModerated{
		CommentID:  comment.ID,
		ProjectID:  comment.ProjectID,
		NewStatus:  string(status),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})

	return comment, nil
}

// SetFeedbackStatus applies a feedback status change. Resolved and rejected
// are not terminal; reports may be reopened at any time.
func (s *ModerationService) SetFeedbackStatus(ctx context.Context, actorID, feedbackID string, status entity.FeedbackStatus, adminComment string) (*entity.Feedback, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, domainErrors.NewValidationError(
			fmt.Sprintf("invalid feedback status %q", status), domainErrors.ErrInvalidStatus)
	}

	feedback, err := s.feedback.UpdateStatus(ctx, feedbackID, status, adminComment)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("feedback report not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to update feedback status", err)
	}

	s.logger.Info("feedback status updated",
		zap.String("feedback_id", feedbackID),
		zap.String("status", string(status)),
		zap.String("actor_id", actorID),
	)

	s.publish(ctx, events.EventFeedbackStatusChanged, feedbackID, events.FeedbackStatusChanged{
		FeedbackID:   feedback.ID,
		NewStatus:    string(status),
		AdminComment: adminComment,
		ActorID:      actorID,
		OwnerID:      feedback.UserID,
		OccurredAt:   time.Now().UTC(),
	})

	return feedback, nil
}

// SetUserRole grants or revokes the admin role. Demoting the only remaining
// admin is refused so the platform cannot lock itself out of moderation.
func (s *ModerationService) SetUserRole(ctx context.Context, actorID, targetID string, role entity.UserRole) (*entity.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, domainErrors.NewValidationError(
			fmt.Sprintf("invalid role %q", role), domainErrors.ErrInvalidRole)
	}

	s.roleMu.Lock()
	defer s.roleMu.Unlock()

	target, err := s.users.GetByExternalID(ctx, targetID)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("user not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to load user", err)
	}

	if target.IsAdmin() && role == entity.RoleUser {
		admins, err := s.users.CountByRole(ctx, entity.RoleAdmin)
		if err != nil {
			return nil, domainErrors.NewPersistenceError("failed to count admins", err)
		}
		if admins <= 1 {
			return nil, domainErrors.NewValidationError(
				"cannot demote the last remaining admin", domainErrors.ErrLastAdmin)
		}
	}

	updated, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		if domainErrors.IsNotFound(err) {
			return nil, domainErrors.NewNotFoundError("user not found", err)
		}
		return nil, domainErrors.NewPersistenceError("failed to update user role", err)
	}

	// Revoke any cached grant immediately, not at TTL expiry.
	s.roles.Invalidate(ctx, targetID)

	s.logger.Info("user role updated",
		zap.String("target_id", targetID),
		zap.String("role", string(role)),
		zap.String("actor_id", actorID),
	)

	s.publish(ctx, events.EventUserRoleChanged, targetID, events.UserRoleChanged{
		UserID:     updated.ExternalID,
		NewRole:    string(role),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}
