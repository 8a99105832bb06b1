package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/storage"
)

var (
	ErrNotFound = errors.New("cart not found")

	// ErrMissingUser rejects carts without an owner before any storage call.
	ErrMissingUser = errors.New("cart must have a userId")

	// ErrAlreadyExists enforces one cart per user at add time.
	ErrAlreadyExists = errors.New("user already has a cart")
)

type Repository interface {
	Add(ctx context.Context, c Cart) (Cart, error)
	List(ctx context.Context) ([]Cart, error)
	GetByID(ctx context.Context, cartID uuid.UUID) (*Cart, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	AddProduct(ctx context.Context, cartID uuid.UUID, p product.Product) error
	RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteByID(ctx context.Context, cartID uuid.UUID) error
}

type repo struct {
	store *storage.Store[Cart]
}

func NewRepository(store *storage.Store[Cart]) Repository {
	return &repo{store: store}
}

func (r *repo) Add(ctx context.Context, c Cart) (Cart, error) {
	if c.UserID == uuid.Nil {
		return Cart{}, ErrMissingUser
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	err := r.store.Mutate(func(carts []Cart) ([]Cart, error) {
		for i := range carts {
			if carts[i].UserID == c.UserID {
				return nil, ErrAlreadyExists
			}
		}
		return append(carts, c), nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return Cart{}, err
		}
		return Cart{}, fmt.Errorf("add cart: %w", err)
	}
	return c, nil
}

func (r *repo) List(ctx context.Context) ([]Cart, error) {
	carts, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return carts, nil
}

func (r *repo) GetByID(ctx context.Context, cartID uuid.UUID) (*Cart, error) {
	carts, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	for i := range carts {
		if carts[i].ID == cartID {
			return &carts[i], nil
		}
	}
	return nil, nil
}

func (r *repo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	carts, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("get cart by user: %w", err)
	}

	for i := range carts {
		if carts[i].UserID == userID {
			return &carts[i], nil
		}
	}
	return nil, nil
}

// AddProduct appends p to the matching cart's product list. Unknown cart
// ids are a silent no-op.
func (r *repo) AddProduct(ctx context.Context, cartID uuid.UUID, p product.Product) error {
	err := r.store.Mutate(func(carts []Cart) ([]Cart, error) {
		for i := range carts {
			if carts[i].ID == cartID {
				carts[i].Products = append(carts[i].Products, p)
				break
			}
		}
		return carts, nil
	})
	if err != nil {
		return fmt.Errorf("add product to cart: %w", err)
	}
	return nil
}

// RemoveProduct removes the first product in the cart whose id matches.
// Unlike AddProduct it fails with ErrNotFound when no cart matches, so the
// checkout workflow can tell "nothing to do" from an impossible request.
func (r *repo) RemoveProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	err := r.store.Mutate(func(carts []Cart) ([]Cart, error) {
		for i := range carts {
			if carts[i].ID != cartID {
				continue
			}
			for j := range carts[i].Products {
				if carts[i].Products[j].ID == productID {
					carts[i].Products = append(carts[i].Products[:j], carts[i].Products[j+1:]...)
					break
				}
			}
			return carts, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove product from cart: %w", err)
	}
	return nil
}

// DeleteByID is a silent no-op when no cart matches.
func (r *repo) DeleteByID(ctx context.Context, cartID uuid.UUID) error {
	err := r.store.Mutate(func(carts []Cart) ([]Cart, error) {
		kept := carts[:0]
		for _, c := range carts {
			if c.ID != cartID {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
