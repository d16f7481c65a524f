package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dozirovkaa/shop-api/internal/adapter/http/middleware"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart *usecase.Cart
}

func NewCartHandler(cart *usecase.Cart) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cart, err := h.cart.Get(ctx, middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

type addItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cart, err := h.cart.AddItem(ctx, middleware.UserID(c), req.ProductID, req.Quantity, req.Size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

type updateQuantityReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.cart.UpdateQuantity(ctx, middleware.UserID(c), c.Param("id"), req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart item updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.cart.RemoveItem(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}
