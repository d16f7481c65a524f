package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dozirovkaa/shop-api/internal/pricing"
	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products usecase.ProductRepo
}

func NewProductHandler(products usecase.ProductRepo) *ProductHandler {
	return &ProductHandler{products: products}
}

// localeFromQuery builds the display locale from ?lang= and ?currency=.
// Unknown values fall back to the default instead of failing the request.
func localeFromQuery(c *gin.Context) pricing.Locale {
	loc := pricing.Locale{
		Language: strings.ToLower(c.DefaultQuery("lang", pricing.DefaultLocale.Language)),
		Currency: strings.ToUpper(c.DefaultQuery("currency", pricing.DefaultLocale.Currency)),
	}
	if !loc.Valid() {
		return pricing.DefaultLocale
	}
	return loc
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	products, err := h.products.List(ctx, c.Query("category"))
	if err != nil {
		fail(c, err)
		return
	}

	loc := localeFromQuery(c)
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p, loc))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	p, err := h.products.GetByID(ctx, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(p, localeFromQuery(c)))
}
