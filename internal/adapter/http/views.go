package http

import (
	"time"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/pricing"
	"github.com/shopspring/decimal"
)

type productView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	// DisplayPrice is Price rendered in the requested display currency.
	DisplayPrice string    `json:"displayPrice"`
	Currency     string    `json:"currency"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Sizes        []string  `json:"sizes"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toProductView(p domain.Product, loc pricing.Locale) productView {
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	display, err := pricing.Format(p.Price, loc)
	if err != nil {
		display, _ = pricing.Format(p.Price, pricing.DefaultLocale)
	}
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DisplayPrice: display,
		Currency:     loc.Currency,
		Image:        p.Image,
		Category:     p.Category,
		Sizes:        sizes,
		CreatedAt:    p.CreatedAt,
	}
}

type cartProductView struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type cartItemView struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Product   cartProductView `json:"product"`
}

type cartView struct {
	ID    string          `json:"id"`
	Items []cartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func toCartView(cart domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Product: cartProductView{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Price: it.Product.Price,
				Image: it.Product.Image,
			},
		})
	}
	return cartView{ID: cart.ID, Items: items, Total: cart.Total()}
}

type orderItemView struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Product   struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	} `json:"product"`
}

type shippingView struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type orderView struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	Items       []orderItemView `json:"items"`
	Shipping    shippingView    `json:"shippingAddress"`
}

func toOrderView(o domain.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		v := orderItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
		}
		v.Product.Name = it.ProductName
		v.Product.Image = it.ProductImage
		items = append(items, v)
	}
	return orderView{
		ID:          o.ID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Items:       items,
		Shipping: shippingView{
			Name:       o.Shipping.Name,
			Email:      o.Shipping.Email,
			Phone:      o.Shipping.Phone,
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
		},
	}
}
