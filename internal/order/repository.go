package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/storage"
)

// ErrNotFound carries the exact user-facing message; deletion and lookup
// must distinguish "no such order" from "empty store".
var ErrNotFound = errors.New("Order not found")

type Repository interface {
	Add(ctx context.Context, o Order) (Order, error)
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (Order, error)
	DeleteByID(ctx context.Context, orderID uuid.UUID) error
}

type repo struct {
	store *storage.Store[Order]
}

func NewRepository(store *storage.Store[Order]) Repository {
	return &repo{store: store}
}

func (r *repo) Add(ctx context.Context, o Order) (Order, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	err := r.store.Mutate(func(orders []Order) ([]Order, error) {
		return append(orders, o), nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("add order: %w", err)
	}
	return o, nil
}

func (r *repo) List(ctx context.Context) ([]Order, error) {
	orders, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *repo) GetByID(ctx context.Context, orderID uuid.UUID) (Order, error) {
	orders, err := r.store.LoadAll()
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}

	for _, o := range orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *repo) DeleteByID(ctx context.Context, orderID uuid.UUID) error {
	err := r.store.Mutate(func(orders []Order) ([]Order, error) {
		kept := orders[:0]
		for _, o := range orders {
			if o.ID != orderID {
				kept = append(kept, o)
			}
		}
		if len(kept) == len(orders) {
			return nil, ErrNotFound
		}
		return kept, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
