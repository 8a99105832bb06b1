package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flatshop/shop-service-go/internal/order"
	"github.com/flatshop/shop-service-go/internal/storage"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Add(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	OrdersByUserID(ctx context.Context, userID uuid.UUID) ([]order.Order, error)
	AddOrder(ctx context.Context, userID uuid.UUID, o order.Order) error
	RemoveOrder(ctx context.Context, userID, orderID uuid.UUID) error
	DeleteByID(ctx context.Context, userID uuid.UUID) error
}

type repo struct {
	store *storage.Store[User]
}

func NewRepository(store *storage.Store[User]) Repository {
	return &repo{store: store}
}

func (r *repo) Add(ctx context.Context, u User) (User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	err := r.store.Mutate(func(users []User) ([]User, error) {
		return append(users, u), nil
	})
	if err != nil {
		return User{}, fmt.Errorf("add user: %w", err)
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]User, error) {
	users, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *repo) GetByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	users, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, nil
}

// OrdersByUserID returns the user's embedded order list, empty when the
// user does not exist.
func (r *repo) OrdersByUserID(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return []order.Order{}, nil
	}
	return u.Orders, nil
}

// AddOrder appends o to the matching user's embedded list. Unknown user ids
// are a silent no-op.
func (r *repo) AddOrder(ctx context.Context, userID uuid.UUID, o order.Order) error {
	err := r.store.Mutate(func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == userID {
				users[i].Orders = append(users[i].Orders, o)
				break
			}
		}
		return users, nil
	})
	if err != nil {
		return fmt.Errorf("add order to user: %w", err)
	}
	return nil
}

// RemoveOrder drops every order with the given id from the user's embedded
// list. Unknown user ids are a silent no-op.
func (r *repo) RemoveOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	err := r.store.Mutate(func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			kept := users[i].Orders[:0]
			for _, o := range users[i].Orders {
				if o.ID != orderID {
					kept = append(kept, o)
				}
			}
			users[i].Orders = kept
			break
		}
		return users, nil
	})
	if err != nil {
		return fmt.Errorf("remove order from user: %w", err)
	}
	return nil
}

func (r *repo) DeleteByID(ctx context.Context, userID uuid.UUID) error {
	err := r.store.Mutate(func(users []User) ([]User, error) {
		kept := users[:0]
		for _, u := range users {
			if u.ID != userID {
				kept = append(kept, u)
			}
		}
		if len(kept) == len(users) {
			return nil, ErrNotFound
		}
		return kept, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
