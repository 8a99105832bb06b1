// Package checkout converts a user's cart into a persisted order across the
// cart, order and user repositories. There is no cross-repository
// transaction; later steps compensate by retrying once and flagging the
// order for reconciliation in the log.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flatshop/shop-service-go/internal/cart"
	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/user"
)

// Publisher emits an event after a successful checkout. Publishing is best
// effort and never fails the checkout.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o order.Order) error
}

type Service struct {
	carts  cart.Repository
	orders order.Repository
	users  user.Repository
	pub    Publisher
	logger *slog.Logger
}

func NewService(carts cart.Repository, orders order.Repository, users user.Repository, pub Publisher, logger *slog.Logger) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		users:  users,
		pub:    pub,
		logger: logger,
	}
}

// PlaceOrder turns the user's current cart into a persisted order, appends
// it to the user's embedded order list and empties the cart.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID) (order.Order, error) {
	c, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return order.Order{}, fmt.Errorf("load cart: %w", err)
	}
	if c == nil {
		return order.Order{}, cart.ErrNotFound
	}

	total := decimal.Zero
	for _, p := range c.Products {
		total = total.Add(p.Price)
	}

	// Snapshot the product list so emptying the cart cannot mutate the order.
	snapshot := append([]product.Product(nil), c.Products...)

	o := order.Order{
		ID:         uuid.New(),
		UserID:     userID,
		TotalPrice: total,
		Products:   snapshot,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := s.orders.Add(ctx, o); err != nil {
		return order.Order{}, fmt.Errorf("persist order: %w", err)
	}

	if err := s.users.AddOrder(ctx, userID, o); err != nil {
		// One retry, then leave the order store authoritative and flag the
		// embedded copy for reconciliation.
		if retryErr := s.users.AddOrder(ctx, userID, o); retryErr != nil {
			s.logger.Error("order needs reconciliation: user order list not updated",
				"orderId", o.ID, "userId", userID, "error", retryErr)
			return order.Order{}, fmt.Errorf("append order to user: %w", retryErr)
		}
	}

	if err := s.emptyCart(ctx, c); err != nil {
		s.logger.Error("order placed but cart not fully emptied",
			"orderId", o.ID, "cartId", c.ID, "error", err)
		return order.Order{}, err
	}

	if s.pub != nil {
		if err := s.pub.PublishOrderPlaced(ctx, o); err != nil {
			s.logger.Warn("publish OrderPlaced failed", "orderId", o.ID, "error", err)
		}
	}

	s.logger.Info("order placed", "orderId", o.ID, "userId", userID, "total", o.TotalPrice)
	return o, nil
}

// EmptyCart removes every product from the user's cart, one at a time.
func (s *Service) EmptyCart(ctx context.Context, userID uuid.UUID) error {
	c, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if c == nil {
		return cart.ErrNotFound
	}
	return s.emptyCart(ctx, c)
}

func (s *Service) emptyCart(ctx context.Context, c *cart.Cart) error {
	for _, p := range c.Products {
		if err := s.carts.RemoveProduct(ctx, c.ID, p.ID); err != nil {
			return fmt.Errorf("remove product %s from cart: %w", p.ID, err)
		}
	}
	return nil
}
