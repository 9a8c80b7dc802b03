package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
)

// ActivityHandler ingests client-side activity events. Logging is
// best-effort: the endpoint always accepts, and a queue or store problem is
// never visible to the client.
type ActivityHandler struct {
	logger   *zap.Logger
	activity *service.ActivityLogger
}

// NewActivityHandler creates the handler.
func NewActivityHandler(logger *zap.Logger, activity *service.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{
		logger:   logger.Named("activity_handler"),
		activity: activity,
	}
}

// ActivityRequest is a client activity event.
type ActivityRequest struct {
	Action      string                 `json:"action"`
	Path        string                 `json:"path"`
	Level       string                 `json:"level"`
	Message     string                 `json:"message"`
	ElementID   string                 `json:"elementId"`
	ElementText string                 `json:"elementText"`
	Details     map[string]interface{} `json:"details"`
}

// Ingest handles POST /logs/activity.
func (h *ActivityHandler) Ingest(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Even a malformed body is logged rather than rejected; the caller
		// must never see a logging failure.
		h.logger.Debug("malformed activity payload", zap.Error(err))
	}

	message := req.Message
	if message == "" {
		message = req.Action
	}

	data := req.Details
	if req.ElementID != "" || req.ElementText != "" {
		if data == nil {
			data = map[string]interface{}{}
		}
		if req.ElementID != "" {
			data["elementId"] = req.ElementID
		}
		if req.ElementText != "" {
			data["elementText"] = req.ElementText
		}
	}

	h.activity.Log(&entity.LogEntry{
		Level:     entity.LogLevel(req.Level),
		Message:   message,
		UserID:    middleware.Identity(c),
		Route:     req.Path,
		Action:    req.Action,
		Data:      data,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	c.Status(http.StatusAccepted)
}
