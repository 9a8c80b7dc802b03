package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
	"github.com/harshl7081/ecowaste/pkg/metrics"
)

// AdminHandler serves the moderation dashboard: status updates, role
// management, and the paginated listings behind it.
type AdminHandler struct {
	logger     *zap.Logger
	moderation *service.ModerationService
	projects   *service.ProjectService
	comments   *service.CommentService
	feedback   *service.FeedbackService
	users      *service.UserService
	authz      *service.AuthzService
	logs       repository.LogRepository
	activity   *service.ActivityLogger
	registry   *metrics.Registry
}

// NewAdminHandler creates the handler.
func NewAdminHandler(
	logger *zap.Logger,
	moderation *service.ModerationService,
	projects *service.ProjectService,
	comments *service.CommentService,
	feedback *service.FeedbackService,
	users *service.UserService,
	authz *service.AuthzService,
	logs repository.LogRepository,
	activity *service.ActivityLogger,
	registry *metrics.Registry,
) *AdminHandler {
	return &AdminHandler{
		logger:     logger.Named("admin_handler"),
		moderation: moderation,
		projects:   projects,
		comments:   comments,
		feedback:   feedback,
		users:      users,
		authz:      authz,
		logs:       logs,
		activity:   activity,
		registry:   registry,
	}
}

// UpdateStatusRequest carries a moderation decision.
type UpdateStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	AdminComment string `json:"adminComment"`
}

// UpdateRoleRequest carries a role change.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) logAdminAction(c *gin.Context, message string, data map[string]interface{}) {
	h.activity.Log(&entity.LogEntry{
		Level:     entity.LogLevelInfo,
		Message:   message,
		UserID:    middleware.Identity(c),
		Route:     c.FullPath(),
		Action:    "admin_action",
		Data:      data,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}

// UpdateProjectStatus handles PUT /admin/projects/:id/status.
func (h *AdminHandler) UpdateProjectStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "status is required", "VALIDATION_ERROR", h.logger)
		return
	}

	project, err := h.moderation.SetProjectStatus(
		c.Request.Context(),
		middleware.Identity(c),
		c.Param("id"),
		entity.ProjectStatus(req.Status),
		req.AdminComment,
	)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.registry.ModerationDecisionsTotal.WithLabelValues("project", req.Status).Inc()
	h.logAdminAction(c, "project status updated", map[string]interface{}{
		"projectId": project.ID, "status": req.Status,
	})

	RespondWithSuccess(c, http.StatusOK, "project status updated", project)
}

// ModerateComment handles PUT /admin/comments/:id/status.
func (h *AdminHandler) ModerateComment(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "status is required", "VALIDATION_ERROR", h.logger)
		return
	}

	comment, err := h.moderation.ModerateComment(
		c.Request.Context(),
		middleware.Identity(c),
		c.Param("id"),
		entity.CommentStatus(req.Status),
	)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.registry.ModerationDecisionsTotal.WithLabelValues("comment", req.Status).Inc()
	h.logAdminAction(c, "comment moderated", map[string]interface{}{
		"commentId": comment.ID, "status": req.Status,
	})

	RespondWithSuccess(c, http.StatusOK, "comment "+req.Status, comment)
}

// UpdateFeedbackStatus handles PUT /admin/feedback/:id/status.
func (h *AdminHandler) UpdateFeedbackStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "status is required", "VALIDATION_ERROR", h.logger)
		return
	}

	feedback, err := h.moderation.SetFeedbackStatus(
		c.Request.Context(),
		middleware.Identity(c),
		c.Param("id"),
		entity.FeedbackStatus(req.Status),
		req.AdminComment,
	)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.registry.ModerationDecisionsTotal.WithLabelValues("feedback", req.Status).Inc()
	h.logAdminAction(c, "feedback status updated", map[string]interface{}{
		"feedbackId": feedback.ID, "status": req.Status,
	})

	RespondWithSuccess(c, http.StatusOK, "feedback status updated", feedback)
}

// UpdateUserRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "role is required", "VALIDATION_ERROR", h.logger)
		return
	}

	user, err := h.moderation.SetUserRole(
		c.Request.Context(),
		middleware.Identity(c),
		c.Param("id"),
		entity.UserRole(req.Role),
	)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.logAdminAction(c, "user role updated", map[string]interface{}{
		"targetId": user.ExternalID, "role": req.Role,
	})

	RespondWithSuccess(c, http.StatusOK, "user role updated to "+req.Role, user)
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)

	users, total, err := h.users.List(c.Request.Context(), page, limit)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, PaginatedResponse{
		Data: users,
		Meta: NewMeta(page, limit, total),
	})
}

// ListProjects handles GET /admin/projects.
func (h *AdminHandler) ListProjects(c *gin.Context) {
	page, limit := pagination(c)

	projects, total, err := h.projects.ListAll(c.Request.Context(), repository.ProjectFilter{
		Status:   entity.ProjectStatus(c.Query("status")),
		Category: entity.ProjectCategory(c.Query("category")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, PaginatedResponse{
		Data: projects,
		Meta: NewMeta(page, limit, total),
	})
}

// ListPendingComments handles GET /admin/comments/pending.
func (h *AdminHandler) ListPendingComments(c *gin.Context) {
	comments, err := h.comments.ListPending(c.Request.Context())
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"data": comments})
}

// ListFeedback handles GET /admin/feedback.
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	page, limit := pagination(c)

	reports, total, err := h.feedback.ListAll(c.Request.Context(), repository.FeedbackFilter{
		Status:   entity.FeedbackStatus(c.Query("status")),
		Severity: entity.FeedbackSeverity(c.Query("severity")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, PaginatedResponse{
		Data: reports,
		Meta: NewMeta(page, limit, total),
	})
}

// ListLogs handles GET /admin/logs.
func (h *AdminHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	filter := repository.LogFilter{
		Level:  entity.LogLevel(c.Query("level")),
		UserID: c.Query("userId"),
		Route:  c.Query("route"),
		Page:   page,
		Limit:  limit,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "invalid from timestamp, expected RFC3339", "VALIDATION_ERROR", h.logger)
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "invalid to timestamp, expected RFC3339", "VALIDATION_ERROR", h.logger)
			return
		}
		filter.To = t
	}

	entries, total, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, "failed to list logs", "PERSISTENCE_ERROR", h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, PaginatedResponse{
		Data: entries,
		Meta: NewMeta(page, limit, total),
	})
}

// Bootstrap handles POST /admin/bootstrap: the authenticated caller claims
// the first admin role. Only reachable while no admin exists and only for
// identities on the configured bootstrap list; requires auth but not the
// admin gate, which nobody could pass yet.
func (h *AdminHandler) Bootstrap(c *gin.Context) {
	user, err := h.authz.BootstrapFirstAdmin(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.logAdminAction(c, "first admin bootstrapped", map[string]interface{}{
		"userId": user.ExternalID,
	})

	RespondWithSuccess(c, http.StatusOK, "admin role granted", user)
}
