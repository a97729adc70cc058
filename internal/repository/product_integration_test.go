package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cableworks/storefront-api/internal/model"
)

func TestProductRepo_CRUD(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := &model.Product{
		Name: "USB-C Cable", Description: "1 meter",
		Price: decimal.RequireFromString("9.99"), Image: "cable.png",
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "USB-C Cable", found.Name)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("9.99")))

	product.Name = "USB-C Cable 1m"
	require.NoError(t, repo.Update(ctx, product))

	found, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "USB-C Cable 1m", found.Name)

	deleted, err := repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProductRepo_Delete_Missing(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	repo := NewProductRepository(testPool)
	deleted, err := repo.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProductRepo_List(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, &model.Product{
			Name: name, Price: decimal.NewFromInt(1),
		}))
	}

	products, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 2)
}
