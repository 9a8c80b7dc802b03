package events

import (
	"context"
	"time"
)

// EventType identifies a moderation event.
type EventType string

const (
	EventProjectStatusChanged  EventType = "ecowaste.project.status.changed"
	EventCommentModerated      EventType = "ecowaste.comment.moderated"
	EventFeedbackStatusChanged EventType = "ecowaste.feedback.status.changed"
	EventUserRoleChanged       EventType = "ecowaste.user.role.changed"
)

// Publisher emits moderation events. Publishing is best-effort on all
// moderation paths: a failed publish is logged and never fails the admin
// action that produced it.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, subject string, payload interface{}) error
	Close() error
}

// ProjectStatusChanged is emitted after a project moderation decision. It is
// the hook a notification service would consume to tell owners about
// approvals.
type ProjectStatusChanged struct {
	ProjectID    string    `json:"projectId"`
	NewStatus    string    `json:"newStatus"`
	AdminComment string    `json:"adminComment,omitempty"`
	ActorID      string    `json:"actorId"`
	OwnerID      string    `json:"ownerId"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// CommentModerated is emitted after a comment moderation decision.
type CommentModerated struct {
	CommentID  string    `json:"commentId"`
	ProjectID  string    `json:"projectId"`
	NewStatus  string    `json:"newStatus"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// FeedbackStatusChanged is emitted after a feedback status change.
type FeedbackStatusChanged struct {
	FeedbackID   string    `json:"feedbackId"`
	NewStatus    string    `json:"newStatus"`
	AdminComment string    `json:"adminComment,omitempty"`
	ActorID      string    `json:"actorId"`
	OwnerID      string    `json:"ownerId"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// UserRoleChanged is emitted after an admin changes a user's role.
type UserRoleChanged struct {
	UserID     string    `json:"userId"`
	NewRole    string    `json:"newRole"`
	ActorID    string    `json:"actorId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NopPublisher drops every event. Used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, EventType, string, interface{}) error { return nil }
func (NopPublisher) Close() error                                                  { return nil }
