package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dozirovkaa/shop-api/internal/adapter/http/middleware"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	query  usecase.OrderRepo
	status usecase.OrderStatusCache
}

func NewOrderHandler(create *usecase.CreateOrder, query usecase.OrderRepo, status usecase.OrderStatusCache) *OrderHandler {
	return &OrderHandler{create: create, query: query, status: status}
}

type createOrderReq struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
}

// Create materializes the cart into an order from the checkout form. The
// optional X-Idempotency-Key header makes retried submissions safe.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.create.Execute(ctx, usecase.CreateOrderInput{
		UserID:         middleware.UserID(c),
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
		Shipping: usecase.ShippingInput{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
		},
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderView(order))
}

func (h *OrderHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orders, err := h.query.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	order, err := h.query.GetByUser(ctx, middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderView(order))
}

// GetStatus answers order-history polling. Ownership is checked against
// storage; the status cache overlays it because the consumer updates the
// cache before a replica read would see the new row.
func (h *OrderHandler) GetStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	orderID := c.Param("id")
	order, err := h.query.GetByUser(ctx, middleware.UserID(c), orderID)
	if err != nil {
		fail(c, err)
		return
	}

	status := order.Status
	if cached, ok, err := h.status.GetStatus(ctx, orderID); err == nil && ok {
		// the cache may be ahead of a replica read
		status = cached
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID, "status": string(status)})
}
