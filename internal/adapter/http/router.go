package http

import (
	"log/slog"

	"github.com/dozirovkaa/shop-api/configs"
	"github.com/dozirovkaa/shop-api/internal/adapter/http/middleware"
	"github.com/dozirovkaa/shop-api/internal/pricing"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrderHandler
	Webhook  *WebhookHandler
	Token    *TokenHandler
}

func NewRouter(cfg configs.Config, h Handlers, session *middleware.Session, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.Logging(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Security.DevTokens {
		r.POST("/v1/token", h.Token.IssueToken)
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/products", h.Products.List)
		v1.GET("/products/:id", h.Products.GetByID)

		// storefront language/currency switcher
		v1.GET("/locales", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"languages":       []string{"ru", "en"},
				"currencies":      pricing.SupportedCurrencies(),
				"defaultLanguage": pricing.DefaultLocale.Language,
				"defaultCurrency": pricing.DefaultLocale.Currency,
			})
		})

		// signature-verified, no session
		v1.POST("/payments/webhook", h.Webhook.HandleStripe)

		authed := v1.Group("", session.Require())
		{
			authed.GET("/cart", h.Cart.Get)
			authed.POST("/cart/items", h.Cart.AddItem)
			authed.PUT("/cart/items/:id", h.Cart.UpdateQuantity)
			authed.DELETE("/cart/items/:id", h.Cart.RemoveItem)

			authed.POST("/checkout/session", h.Checkout.CreateSession)

			authed.POST("/orders", h.Orders.Create)
			authed.GET("/orders", h.Orders.List)
			authed.GET("/orders/:id", h.Orders.GetByID)
			authed.GET("/orders/:id/status", h.Orders.GetStatus)
		}
	}

	return r
}
