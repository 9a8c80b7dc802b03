package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
)

// FeedbackHandler serves hazard report submission and the caller's own
// report listing.
type FeedbackHandler struct {
	logger   *zap.Logger
	feedback *service.FeedbackService
	users    *service.UserService
	activity *service.ActivityLogger
}

// NewFeedbackHandler creates the handler.
func NewFeedbackHandler(logger *zap.Logger, feedback *service.FeedbackService, users *service.UserService, activity *service.ActivityLogger) *FeedbackHandler {
	return &FeedbackHandler{
		logger:   logger.Named("feedback_handler"),
		feedback: feedback,
		users:    users,
		activity: activity,
	}
}

// SubmitFeedbackRequest is the hazard report submission body.
type SubmitFeedbackRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Address     string  `json:"address" binding:"required"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	ImageURL    string  `json:"imageUrl" binding:"required"`
	Severity    string  `json:"severity"`
}

// Submit handles POST /feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	identity := middleware.Identity(c)

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR", h.logger)
		return
	}

	ownerEmail := ""
	if user, err := h.users.Get(c.Request.Context(), identity); err == nil {
		ownerEmail = user.Email
	}

	feedback, err := h.feedback.Submit(c.Request.Context(), identity, ownerEmail, service.SubmitFeedbackInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		ImageURL:    req.ImageURL,
		Severity:    entity.FeedbackSeverity(req.Severity),
	})
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.activity.Log(&entity.LogEntry{
		Level:   entity.LogLevelInfo,
		Message: "hazard report submitted",
		UserID:  identity,
		Route:   c.FullPath(),
		Action:  "report_submit",
		Data:    map[string]interface{}{"feedbackId": feedback.ID, "severity": string(feedback.Severity)},
	})

	RespondWithCreated(c, feedback)
}

// ListMine handles GET /feedback/mine.
func (h *FeedbackHandler) ListMine(c *gin.Context) {
	reports, err := h.feedback.ListForUser(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"data": reports})
}
