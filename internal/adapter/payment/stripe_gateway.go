package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeGateway implements usecase.PaymentProvider against Stripe hosted
// checkout. Amounts arrive already converted to minor units.
type StripeGateway struct {
	api           *client.API
	currency      string
	successURL    string
	cancelURL     string
	shipCountries []string
	timeout       time.Duration
}

func NewStripeGateway(secretKey, currency, successURL, cancelURL string, shippingCountries []string, timeout time.Duration) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StripeGateway{
		api:           api,
		currency:      currency,
		successURL:    successURL,
		cancelURL:     cancelURL,
		shipCountries: shippingCountries,
		timeout:       timeout,
	}
}

// sessionParams builds the checkout session request. The hosted page must
// collect a shipping address; the completed-session webhook feeds it into
// order materialization, which rejects orders without one.
func (g *StripeGateway) sessionParams(req usecase.CheckoutSessionReq) *stripe.CheckoutSessionParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(li.Name),
		}
		if li.Description != "" {
			product.Description = stripe.String(li.Description)
		}
		if li.ImageURL != "" {
			product.Images = stripe.StringSlice([]string{li.ImageURL})
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(g.currency),
				UnitAmount:  stripe.Int64(li.UnitAmount),
				ProductData: product,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(req.BuyerEmail),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     items,
		SuccessURL:    stripe.String(g.successURL),
		CancelURL:     stripe.String(g.cancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(g.shipCountries),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}

func (g *StripeGateway) CreateSession(ctx context.Context, req usecase.CheckoutSessionReq) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := g.sessionParams(req)
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

var _ usecase.PaymentProvider = (*StripeGateway)(nil)
