package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatshop/shop-service-go/internal/product"
)

// Order snapshots the cart's products at checkout time. Later price changes
// do not retroactively affect a placed order.
type Order struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"userId"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Products   []product.Product `json:"products"`
	CreatedAt  time.Time         `json:"createdAt"`
}
