package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/handler/http/middleware"
	"github.com/harshl7081/ecowaste/internal/service"
)

// CommentHandler serves comment submission and viewer-filtered listing.
type CommentHandler struct {
	logger   *zap.Logger
	comments *service.CommentService
	users    *service.UserService
	activity *service.ActivityLogger
}

// NewCommentHandler creates the handler.
func NewCommentHandler(logger *zap.Logger, comments *service.CommentService, users *service.UserService, activity *service.ActivityLogger) *CommentHandler {
	return &CommentHandler{
		logger:   logger.Named("comment_handler"),
		comments: comments,
		users:    users,
		activity: activity,
	}
}

// SubmitCommentRequest is the comment submission body.
type SubmitCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse augments a comment with the per-viewer ownership flag.
type CommentResponse struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	UserName  string `json:"userName"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	IsOwner   bool   `json:"isOwner"`
}

// Submit handles POST /projects/:id/comments.
func (h *CommentHandler) Submit(c *gin.Context) {
	identity := middleware.Identity(c)
	projectID := c.Param("id")

	var req SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR", h.logger)
		return
	}

	userName := ""
	if user, err := h.users.Get(c.Request.Context(), identity); err == nil {
		userName = user.FirstName + " " + user.LastName
	}

	comment, err := h.comments.Submit(c.Request.Context(), identity, userName, projectID, req.Content)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	h.activity.Log(&entity.LogEntry{
		Level:   entity.LogLevelInfo,
		Message: "comment submitted",
		UserID:  identity,
		Route:   c.FullPath(),
		Action:  "form_submit",
		Data:    map[string]interface{}{"projectId": projectID, "commentId": comment.ID},
	})

	RespondWithCreated(c, comment)
}

// List handles GET /projects/:id/comments. Pending comments appear only for
// admins and the project owner.
func (h *CommentHandler) List(c *gin.Context) {
	viewerID := middleware.Identity(c)
	projectID := c.Param("id")

	comments, err := h.comments.ListForProject(c.Request.Context(), viewerID, projectID)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			UserName:  comment.UserName,
			Status:    string(comment.Status),
			CreatedAt: comment.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			IsOwner:   viewerID != "" && comment.UserID == viewerID,
		})
	}

	RespondWithData(c, http.StatusOK, gin.H{"comments": out})
}
