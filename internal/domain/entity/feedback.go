package entity

import "time"

// FeedbackSeverity grades the urgency of a reported hazard.
type FeedbackSeverity string

const (
	SeverityLow      FeedbackSeverity = "low"
	SeverityMedium   FeedbackSeverity = "medium"
	SeverityHigh     FeedbackSeverity = "high"
	SeverityCritical FeedbackSeverity = "critical"
)

// IsValid reports whether the severity is one of the known grades.
func (s FeedbackSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// FeedbackStatus tracks the handling of a hazard report. There is no
// terminal state: resolved and rejected reports may be reopened.
type FeedbackStatus string

const (
	FeedbackStatusPending     FeedbackStatus = "pending"
	FeedbackStatusUnderReview FeedbackStatus = "under_review"
	FeedbackStatusResolved    FeedbackStatus = "resolved"
	FeedbackStatusRejected    FeedbackStatus = "rejected"
)

// IsValid reports whether the status is one of the known statuses.
func (s FeedbackStatus) IsValid() bool {
	switch s {
	case FeedbackStatusPending, FeedbackStatusUnderReview,
		FeedbackStatusResolved, FeedbackStatusRejected:
		return true
	}
	return false
}

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// FeedbackLocation is the geolocated address of a reported hazard.
type FeedbackLocation struct {
	Address     string      `bson:"address" json:"address"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

// Feedback is a citizen hazard or issue report.
type Feedback struct {
	ID           string           `bson:"_id" json:"id"`
	Title        string           `bson:"title" json:"title"`
	Description  string           `bson:"description" json:"description"`
	Location     FeedbackLocation `bson:"location" json:"location"`
	ImageURL     string           `bson:"imageUrl" json:"imageUrl"`
	UserID       string           `bson:"userId" json:"userId"`
	UserEmail    string           `bson:"userEmail" json:"userEmail"`
	Severity     FeedbackSeverity `bson:"severity" json:"severity"`
	Status       FeedbackStatus   `bson:"status" json:"status"`
	AdminComment string           `bson:"adminComment,omitempty" json:"adminComment,omitempty"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt" json:"updatedAt"`
}
