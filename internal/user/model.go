package user

import (
	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/order"
)

// User embeds a denormalized copy of its orders alongside the independent
// order store. The embedded list is a convenience view; the order store is
// authoritative.
type User struct {
	ID     uuid.UUID     `json:"id"`
	Name   string        `json:"name"`
	Orders []order.Order `json:"orders"`
}
