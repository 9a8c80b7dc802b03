package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
)

// ProjectHandler serves proposal submission and listing.
type ProjectHandler struct {
	logger   *zap.Logger
	projects *service.ProjectService
	users    *service.UserService
	activity *service.ActivityLogger
}

// NewProjectHandler creates the handler.
func NewProjectHandler(logger *zap.Logger, projects *service.ProjectService, users *service.UserService, activity *service.ActivityLogger) *ProjectHandler {
	return &ProjectHandler{
		logger:   logger.Named("project_handler"),
		projects: projects,
		users:    users,
		activity: activity,
	}
}

// SubmitProjectRequest is the proposal submission body.
type SubmitProjectRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Budget       float64 `json:"budget"`
	Timeline     string  `json:"timeline" binding:"required"`
	ContactName  string  `json:"contactName" binding:"required"`
	ContactEmail string  `json:"contactEmail" binding:"required,email"`
	ContactPhone string  `json:"contactPhone"`
	Visibility   string  `json:"visibility"`
}

// Submit handles POST /projects.
func (h *ProjectHandler) Submit(c *gin.Context) {
	identity := middleware.Identity(c)

	var req SubmitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR", h.logger)
		return
	}

	ownerEmail := ""
	if user, err := h.users.Get(c.Request.Context(), identity); err == nil {
		ownerEmail = user.Email
	}

	project, err := h.projects.Submit(c.Request.Context(), identity, ownerEmail, service.SubmitProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     entity.ProjectCategory(req.Category),
		Location:     req.Location,
		Budget:       req.Budget,
		Timeline:     req.Timeline,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Visibility:   entity.ProjectVisibility(req.Visibility),
	})
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.activity.Log(&entity.LogEntry{
		Level:   entity.LogLevelInfo,
		Message: "project proposal submitted",
		UserID:  identity,
		Route:   c.FullPath(),
		Action:  "project_create",
		Data:    map[string]interface{}{"projectId": project.ID, "category": string(project.Category)},
	})

	RespondWithCreated(c, project)
}

// ListPublic handles GET /projects.
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	page, limit := pagination(c)

	projects, total, err := h.projects.ListPublic(c.Request.Context(), page, limit)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, PaginatedResponse{
		Data: projects,
		Meta: NewMeta(page, limit, total),
	})
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"data": project})
}

// ListMine handles GET /projects/mine.
func (h *ProjectHandler) ListMine(c *gin.Context) {
	projects, err := h.projects.ListForUser(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}
	RespondWithData(c, http.StatusOK, gin.H{"data": projects})
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
