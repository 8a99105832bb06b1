package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flatshop/shop-service-go/internal/product"
	"github.com/flatshop/shop-service-go/internal/storage"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	return NewRepository(storage.New[Cart](filepath.Join(t.TempDir(), "carts.json")))
}

func randomProduct() product.Product {
	return product.Product{
		ID:    uuid.New(),
		Name:  gofakeit.ProductName(),
		Price: decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
	}
}

func TestAdd(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.UserID, got.UserID)
}

func TestAdd_RejectsMissingUser(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Add(context.Background(), Cart{})
	require.ErrorIs(t, err, ErrMissingUser)

	carts, listErr := repo.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, carts)
}

func TestAdd_OneCartPerUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	_, err := repo.Add(ctx, Cart{UserID: userID})
	require.NoError(t, err)

	_, err = repo.Add(ctx, Cart{UserID: userID})
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetByUserID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	c, err := repo.Add(ctx, Cart{UserID: userID})
	require.NoError(t, err)

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	missing, err := repo.GetByUserID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddProduct_KeepsDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)

	p := randomProduct()
	require.NoError(t, repo.AddProduct(ctx, c.ID, p))
	require.NoError(t, repo.AddProduct(ctx, c.ID, p))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Products, 2)
}

func TestAddProduct_UnknownCartIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, repo.AddProduct(ctx, uuid.New(), randomProduct()))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Products)
}

func TestRemoveProduct_FirstMatchOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)

	p := randomProduct()
	require.NoError(t, repo.AddProduct(ctx, c.ID, p))
	require.NoError(t, repo.AddProduct(ctx, c.ID, p))

	require.NoError(t, repo.RemoveProduct(ctx, c.ID, p.ID))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Products, 1)
}

func TestRemoveProduct_UnknownCart(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.RemoveProduct(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveProduct_MissingProductIsNoOp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)
	require.NoError(t, repo.AddProduct(ctx, c.ID, randomProduct()))

	// Cart exists, product does not: no error, nothing removed.
	require.NoError(t, repo.RemoveProduct(ctx, c.ID, uuid.New()))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Products, 1)
}

func TestDeleteByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Cart{UserID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, c.ID))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Unknown ids are a silent no-op.
	require.NoError(t, repo.DeleteByID(ctx, uuid.New()))
}
