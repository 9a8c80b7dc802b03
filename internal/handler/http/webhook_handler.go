package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/service"
)

// WebhookHandler receives identity-provider sync events. Payloads are
// authenticated with an HMAC-SHA256 signature over the raw body.
type WebhookHandler struct {
	logger *zap.Logger
	users  *service.UserService
	secret string
}

// NewWebhookHandler creates the handler.
func NewWebhookHandler(logger *zap.Logger, users *service.UserService, secret string) *WebhookHandler {
	return &WebhookHandler{
		logger: logger.Named("webhook_handler"),
		users:  users,
		secret: secret,
	}
}

// SignatureHeader carries the hex-encoded HMAC of the request body.
const SignatureHeader = "X-Webhook-Signature"

type identityWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleIdentityEvent handles POST /webhooks/identity.
func (h *WebhookHandler) HandleIdentityEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "failed to read body", "VALIDATION_ERROR", h.logger)
		return
	}

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		RespondWithError(c, http.StatusUnauthorized, "invalid webhook signature", "UNAUTHORIZED", h.logger)
		return
	}

	var event identityWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid webhook payload", "VALIDATION_ERROR", h.logger)
		return
	}

	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	syncErr := h.users.SyncFromIdentityProvider(c.Request.Context(), service.IdentityEvent{
		Type:       event.Type,
		ExternalID: event.Data.ID,
		FirstName:  event.Data.FirstName,
		LastName:   event.Data.LastName,
		Email:      email,
		ImageURL:   event.Data.ImageURL,
	})
	if syncErr != nil {
		RespondWithDomainError(c, syncErr, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"message": "webhook processed"})
}
