package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lifelessonsapp/lifelessons-backend/internal/config"
	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/services"
)

type WebhookHandler struct {
	subscriptionService *services.SubscriptionService
	cfg                 *config.Config
}

func NewWebhookHandler(subscriptionService *services.SubscriptionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{subscriptionService: subscriptionService, cfg: cfg}
}

// HandleCheckout receives subscription lifecycle events from the payment
// collaborator. The provider retries on non-2xx, so only transient faults
// return 500; a missing user is the provider's data problem and gets 200.
func (h *WebhookHandler) HandleCheckout(c *fiber.Ctx) error {
	if !h.authorized(c) {
		return unauthorized(c)
	}

	var payload dto.CheckoutWebhook
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	if err := h.subscriptionService.HandleWebhookEvent(&payload.Event); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			slog.Warn("checkout webhook for unknown user",
				"event_type", payload.Event.Type,
				"event_id", payload.Event.ID)
			return c.JSON(fiber.Map{"received": true, "processed": false})
		}
		slog.Error("checkout webhook processing failed",
			"event_type", payload.Event.Type,
			"event_id", payload.Event.ID,
			"error", err.Error())
		return internalError(c, "Webhook processing failed")
	}

	return c.JSON(fiber.Map{"received": true, "processed": true})
}

func (h *WebhookHandler) authorized(c *fiber.Ctx) bool {
	if h.cfg.CheckoutWebhookSecret == "" {
		return false
	}
	auth := c.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.CheckoutWebhookSecret)) == 1
}
