package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatshop/shop-service-go/internal/order"
)

const (
	orderPlacedEventName    = "OrderPlaced"
	orderPlacedEventVersion = 1
)

type OrderPlacedLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// OrderPlacedPayload is the v1 payload published after a successful checkout.
type OrderPlacedPayload struct {
	OrderID    string            `json:"orderId"`
	UserID     string            `json:"userId"`
	Lines      []OrderPlacedLine `json:"lines"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Timestamp  time.Time         `json:"timestamp"`
}

// OrderPlacedEnvelope is the enveloped event structure.
type OrderPlacedEnvelope = Envelope[OrderPlacedPayload]

// BuildOrderPlacedEnvelope builds an enveloped OrderPlaced event.
func BuildOrderPlacedEnvelope(o order.Order, seq int64) OrderPlacedEnvelope {
	lines := make([]OrderPlacedLine, 0, len(o.Products))
	for _, p := range o.Products {
		lines = append(lines, OrderPlacedLine{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Price:     p.Price,
		})
	}

	return OrderPlacedEnvelope{
		EventName:    orderPlacedEventName,
		EventVersion: orderPlacedEventVersion,
		EventID:      uuid.NewString(),
		Producer:     "shop-service",
		PartitionKey: o.ID.String(),
		Sequence:     seq,
		OccurredAt:   time.Now().UTC(),
		Payload: OrderPlacedPayload{
			OrderID:    o.ID.String(),
			UserID:     o.UserID.String(),
			Lines:      lines,
			TotalPrice: o.TotalPrice,
			Timestamp:  o.CreatedAt,
		},
	}
}
