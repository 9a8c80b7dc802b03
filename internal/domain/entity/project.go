package entity

import "time"

// ProjectCategory classifies a waste-management proposal.
type ProjectCategory string

const (
	CategorySegregation  ProjectCategory = "segregation"
	CategoryDisposal     ProjectCategory = "disposal"
	CategorySanitization ProjectCategory = "sanitization"
	CategoryOther        ProjectCategory = "other"
)

// IsValid reports whether the category is one of the known categories.
func (c ProjectCategory) IsValid() bool {
	switch c {
	case CategorySegregation, CategoryDisposal, CategorySanitization, CategoryOther:
		return true
	}
	return false
}

// ProjectStatus is the moderation status of a project proposal.
type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusApproved   ProjectStatus = "approved"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusRejected   ProjectStatus = "rejected"
)

// IsValid reports whether the status is one of the known statuses.
// Transitions between statuses are deliberately unrestricted: admins may
// move a project back to pending after approving it.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusApproved, ProjectStatusInProgress,
		ProjectStatusCompleted, ProjectStatusRejected:
		return true
	}
	return false
}

// ProjectVisibility controls who can see a project proposal.
type ProjectVisibility string

const (
	VisibilityPublic    ProjectVisibility = "public"
	VisibilityPrivate   ProjectVisibility = "private"
	VisibilityModerated ProjectVisibility = "moderated"
)

// IsValid reports whether the visibility is one of the known values.
func (v ProjectVisibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityModerated:
		return true
	}
	return false
}

// Project is a user-submitted waste-management proposal. Projects always
// start pending and are never hard-deleted; only the moderation workflow
// mutates them after creation.
type Project struct {
	ID           string            `bson:"_id" json:"id"`
	Title        string            `bson:"title" json:"title"`
	Description  string            `bson:"description" json:"description"`
	Category     ProjectCategory   `bson:"category" json:"category"`
	Location     string            `bson:"location" json:"location"`
	Budget       float64           `bson:"budget" json:"budget"`
	Timeline     string            `bson:"timeline" json:"timeline"`
	ContactName  string            `bson:"contactName" json:"contactName"`
	ContactEmail string            `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string            `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	UserID       string            `bson:"userId" json:"userId"`
	UserEmail    string            `bson:"userEmail" json:"userEmail"`
	Visibility   ProjectVisibility `bson:"visibility" json:"visibility"`
	Status       ProjectStatus     `bson:"status" json:"status"`
	AdminComment string            `bson:"adminComment,omitempty" json:"adminComment,omitempty"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}
