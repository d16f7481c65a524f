package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dozirovkaa/shop-api/internal/adapter/http/middleware"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
}

func NewCheckoutHandler(checkout *usecase.Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CreateSession starts a hosted payment session for the user's cart and
// returns the redirect URL. The timeout covers the provider round trip.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	url, err := h.checkout.CreateSession(ctx, middleware.UserID(c), middleware.Email(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
