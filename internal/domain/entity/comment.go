package entity

import "time"

// CommentStatus is the moderation status of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// IsValid reports whether the status is one of the known statuses.
func (s CommentStatus) IsValid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected:
		return true
	}
	return false
}

// IsModerationDecision reports whether the status is a value an admin may
// set. Pending is the implicit creation state and never a decision.
func (s CommentStatus) IsModerationDecision() bool {
	return s == CommentStatusApproved || s == CommentStatusRejected
}

// Comment is a user comment on a project. Comments are created pending and
// become visible to the public only once approved; the project owner and
// admins see them in every status.
type Comment struct {
	ID        string        `bson:"_id" json:"id"`
	ProjectID string        `bson:"projectId" json:"projectId"`
	UserID    string        `bson:"userId" json:"userId"`
	UserName  string        `bson:"userName" json:"userName"`
	Content   string        `bson:"content" json:"content"`
	Status    CommentStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
