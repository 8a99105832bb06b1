package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatshop/shop-service-go/internal/storage"
)

type Repository interface {
	Add(ctx context.Context, p Product) (Product, error)
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, productID uuid.UUID) (*Product, error)
	Update(ctx context.Context, productID uuid.UUID, name string, price decimal.Decimal) (*Product, error)
	ApplyDiscount(ctx context.Context, percent decimal.Decimal, productIDs []uuid.UUID) error
	DeleteByID(ctx context.Context, productID uuid.UUID) error
}

type repo struct {
	store *storage.Store[Product]
}

func NewRepository(store *storage.Store[Product]) Repository {
	return &repo{store: store}
}

func (r *repo) Add(ctx context.Context, p Product) (Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		return append(products, p), nil
	})
	if err != nil {
		return Product{}, fmt.Errorf("add product: %w", err)
	}
	return p, nil
}

func (r *repo) List(ctx context.Context) ([]Product, error) {
	products, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *repo) GetByID(ctx context.Context, productID uuid.UUID) (*Product, error) {
	products, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, nil
}

// Update sets a product's name and price in place. It returns nil without
// writing when no product matches.
func (r *repo) Update(ctx context.Context, productID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	var updated *Product

	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == productID {
				products[i].Name = name
				products[i].Price = price
				p := products[i]
				updated = &p
				break
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// ApplyDiscount multiplies each listed product's price by (1 - percent/100),
// rounded to two decimal places. Discounts compose multiplicatively when
// reapplied; they are not capped at the original price.
func (r *repo) ApplyDiscount(ctx context.Context, percent decimal.Decimal, productIDs []uuid.UUID) error {
	ids := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		ids[id] = struct{}{}
	}

	factor := decimal.NewFromInt(1).Sub(percent.Div(decimal.NewFromInt(100)))

	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		for i := range products {
			if _, ok := ids[products[i].ID]; ok {
				products[i].Price = products[i].Price.Mul(factor).Round(2)
			}
		}
		return products, nil
	})
	if err != nil {
		return fmt.Errorf("apply discount: %w", err)
	}
	return nil
}

// DeleteByID is a silent no-op when no product matches.
func (r *repo) DeleteByID(ctx context.Context, productID uuid.UUID) error {
	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		kept := products[:0]
		for _, p := range products {
			if p.ID != productID {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
