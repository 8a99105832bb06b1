package cart

import (
	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/product"
)

// Cart holds copies of products, not references; the same product added
// twice yields two entries.
type Cart struct {
	ID       uuid.UUID         `json:"id"`
	UserID   uuid.UUID         `json:"userId"`
	Products []product.Product `json:"products"`
}
