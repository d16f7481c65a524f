package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dozirovkaa/shop-api/internal/adapter/payment"
	"github.com/dozirovkaa/shop-api/internal/logging"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 64 * 1024

type WebhookHandler struct {
	create *usecase.CreateOrder
	secret string
}

func NewWebhookHandler(create *usecase.CreateOrder, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{create: create, secret: webhookSecret}
}

// HandleStripe materializes an order from a verified
// checkout.session.completed event. The session ID is the idempotency key,
// so redelivered events create at most one order. Business-rule rejections
// return 200 (redelivery cannot heal them); storage failures return 500 so
// the provider retries.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	log := logging.From(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read_error"})
		return
	}

	sess, ok, err := payment.ParseConfirmedSession(payload, c.GetHeader("Stripe-Signature"), h.secret)
	if err != nil {
		log.Warn("webhook rejected", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
		return
	}
	if !ok {
		// event type we don't act on
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if sess.UserID == "" {
		log.Warn("completed session without userId metadata", "session_id", sess.SessionID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:         sess.UserID,
		IdempotencyKey: sess.SessionID,
		Shipping:       sess.Shipping,
	})
	switch {
	case err == nil:
		log.Info("order materialized from payment", "order_id", order.ID, "session_id", sess.SessionID)
		c.JSON(http.StatusOK, gin.H{"orderId": order.ID})
	case errors.Is(err, usecase.ErrDuplicate):
		// a concurrent delivery holds the lock; it will finish the job
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, usecase.ErrEmptyCart), errors.Is(err, usecase.ErrInvalidShipping):
		log.Warn("payment confirmed but order not materialized", "session_id", sess.SessionID, "err", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
	default:
		log.Error("webhook order materialization failed", "session_id", sess.SessionID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
