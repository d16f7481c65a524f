package payment

import (
	"encoding/json"
	"fmt"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

// ConfirmedSession is a completed checkout session reduced to what order
// materialization needs. SessionID doubles as the idempotency key.
type ConfirmedSession struct {
	SessionID string
	UserID    string
	CartID    string
	Shipping  usecase.ShippingInput
}

// ParseConfirmedSession verifies the webhook signature and extracts the
// completed session, if any. ok is false for event types we don't act on.
func ParseConfirmedSession(payload []byte, sigHeader, secret string) (cs ConfirmedSession, ok bool, err error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return ConfirmedSession{}, false, fmt.Errorf("verify webhook: %w", err)
	}
	if event.Type != "checkout.session.completed" {
		return ConfirmedSession{}, false, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return ConfirmedSession{}, false, fmt.Errorf("decode session: %w", err)
	}

	cs = ConfirmedSession{
		SessionID: sess.ID,
		UserID:    sess.Metadata["userId"],
		CartID:    sess.Metadata["cartId"],
	}
	if sess.CustomerDetails != nil {
		cs.Shipping.Email = sess.CustomerDetails.Email
		cs.Shipping.Phone = sess.CustomerDetails.Phone
	}
	if sess.Shipping != nil {
		cs.Shipping.Name = sess.Shipping.Name
		if sess.Shipping.Address != nil {
			cs.Shipping.Address = sess.Shipping.Address.Line1
			cs.Shipping.City = sess.Shipping.Address.City
			cs.Shipping.PostalCode = sess.Shipping.Address.PostalCode
		}
	}
	return cs, true, nil
}
