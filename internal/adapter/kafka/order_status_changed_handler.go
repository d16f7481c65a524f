package kafka

import (
	"context"
	"fmt"

	domain "github.com/dozirovkaa/shop-api/internal/entity"
	"github.com/dozirovkaa/shop-api/internal/usecase"
)

// allowedFrom lists which statuses a fulfillment event may transition away
// from, per target status. Orders only move forward; CANCELLED is reachable
// until the order ships.
var allowedFrom = map[domain.Status][]domain.Status{
	domain.StatusProcessing: {domain.StatusPending},
	domain.StatusShipped:    {domain.StatusProcessing},
	domain.StatusDelivered:  {domain.StatusShipped},
	domain.StatusCancelled:  {domain.StatusPending, domain.StatusProcessing},
}

// OrderStatusChangedHandler applies fulfillment status events with guarded
// transitions, so a late or replayed event cannot move an order backwards.
type OrderStatusChangedHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.OrderStatusCache // optional
}

func NewOrderStatusChangedHandler(repo usecase.OrderRepo, cache usecase.OrderStatusCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Repo: repo, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	target := domain.Status(ev.Status)
	if !domain.IsValidStatus(target) {
		return fmt.Errorf("unknown status %q for order %s", ev.Status, ev.OrderID)
	}
	froms, ok := allowedFrom[target]
	if !ok {
		// PENDING is the initial state; no event moves an order into it.
		return fmt.Errorf("status %q is not a valid transition target for order %s", ev.Status, ev.OrderID)
	}

	var applied bool
	for _, from := range froms {
		changed, err := h.Repo.UpdateStatusIf(ctx, ev.OrderID, from, target)
		if err != nil {
			return err
		}
		if changed {
			applied = true
			break
		}
	}
	if !applied {
		// Already at or past the target; nothing to do on replay.
		return nil
	}

	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, target)
	}
	return nil
}
