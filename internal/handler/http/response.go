package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
)

// ResponseError is the error body returned by every endpoint.
type ResponseError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ResponseSuccess wraps a message plus optional data.
type ResponseSuccess struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Meta is the pagination envelope.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewMeta computes the pagination envelope.
func NewMeta(page, limit int, total int64) Meta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{Page: page, Limit: limit, Total: total, Pages: pages}
}

// PaginatedResponse is a data list plus pagination meta.
type PaginatedResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// RespondWithError sends an error response and logs it.
func RespondWithError(c *gin.Context, statusCode int, message string, errorCode string, logger *zap.Logger) {
	logger.Error("API error response",
		zap.Int("status_code", statusCode),
		zap.String("error_message", message),
		zap.String("error_code", errorCode),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)

	c.JSON(statusCode, ResponseError{Error: message, Code: errorCode})
}

// RespondWithDomainError maps the domain error taxonomy onto HTTP status
// codes. Store failures come back as an explicit 500: an admin action that
// looks successful but did not persist is worse than a visible failure.
func RespondWithDomainError(c *gin.Context, err error, logger *zap.Logger) {
	var apiErr domainErrors.APIError
	message := err.Error()
	code := domainErrors.CodeInternal
	if errors.As(err, &apiErr) {
		message = apiErr.Message()
		code = apiErr.ErrorCode()
	}

	status := http.StatusInternalServerError
	switch {
	case domainErrors.IsValidation(err):
		status = http.StatusBadRequest
	case domainErrors.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case domainErrors.IsForbidden(err):
		status = http.StatusForbidden
	case domainErrors.IsNotFound(err):
		status = http.StatusNotFound
	case domainErrors.IsConflict(err):
		status = http.StatusConflict
	}

	RespondWithError(c, status, message, code, logger)
}

// RespondWithSuccess sends a message plus data.
func RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, ResponseSuccess{Message: message, Data: data})
}

// RespondWithData sends data only.
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondWithCreated sends a 201 with the created resource.
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
