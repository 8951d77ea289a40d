package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	entusecases "coursegate/internal/application/entitlement/usecases"
	infrabilling "coursegate/internal/infrastructure/billing"
	"coursegate/internal/infrastructure/cache"
	"coursegate/internal/shared/logger"
	"coursegate/internal/shared/utils"
)

// maxWebhookBodyBytes bounds the request body read for signature
// verification. Provider events are small; anything larger is hostile.
const maxWebhookBodyBytes = 1 << 20

type WebhookHandler struct {
	verifier  *infrabilling.WebhookVerifier
	deduper   *cache.WebhookDeduper
	processUC *entusecases.ProcessBillingEventUseCase
	logger    logger.Interface
}

func NewWebhookHandler(
	verifier *infrabilling.WebhookVerifier,
	deduper *cache.WebhookDeduper,
	processUC *entusecases.ProcessBillingEventUseCase,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		deduper:   deduper,
		processUC: processUC,
		logger:    logger.NewLogger(),
	}
}

// HandleStripeWebhook verifies, decodes, and processes one provider event.
// The signature is checked over the raw body before anything else touches
// it; an event that fails verification causes no state change at all.
// Processing failures return 5xx so the provider redelivers.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := h.verifier.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.Warnw("webhook verification failed", "remote_addr", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	decoded, err := infrabilling.DecodeEvent(event)
	if err != nil {
		h.logger.Warnw("failed to decode webhook event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "malformed event payload")
		return
	}

	if h.deduper.Seen(c.Request.Context(), decoded.ID()) {
		h.logger.Infow("skipping duplicate webhook delivery",
			"event_id", decoded.ID(),
			"event_type", decoded.EventType())
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := h.processUC.Execute(c.Request.Context(), decoded); err != nil {
		h.logger.Errorw("failed to process webhook event",
			"event_id", decoded.ID(),
			"event_type", decoded.EventType(),
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	// Mark only after a successful apply: a failed delivery must stay
	// unmarked so the provider's retry is processed, not swallowed.
	h.deduper.MarkDelivered(c.Request.Context(), decoded.ID())

	c.JSON(http.StatusOK, gin.H{"received": true})
}
