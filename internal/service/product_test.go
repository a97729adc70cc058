package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cableworks/storefront-api/internal/dto"
	"github.com/cableworks/storefront-api/internal/model"
)

type mockProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (m *mockProductRepo) List(_ context.Context, _, _ int) ([]model.Product, int, error) {
	var all []model.Product
	for _, p := range m.products {
		all = append(all, *p)
	}
	return all, len(all), nil
}

func (m *mockProductRepo) Count(_ context.Context) (int, error) {
	return len(m.products), nil
}

func (m *mockProductRepo) Update(_ context.Context, p *model.Product) error {
	clone := *p
	m.products[p.ID] = &clone
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func seedProduct(repo *mockProductRepo, name, price string) *model.Product {
	p := &model.Product{Name: name, Price: decimal.RequireFromString(price)}
	_ = repo.Create(context.Background(), p)
	return p
}

func TestProductService_Create(t *testing.T) {
	svc := NewProductService(newMockProductRepo(), nil)
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "USB-C Cable", Price: decimal.NewFromFloat(9.99),
	})
	require.NoError(t, err)
	assert.Equal(t, "USB-C Cable", resp.Name)
	assert.True(t, resp.Price.Equal(decimal.NewFromFloat(9.99)))
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo(), nil)
	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Update_Partial(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewProductService(repo, nil)

	p := &model.Product{
		Name:        "USB-C Cable",
		Description: "1 meter",
		Price:       decimal.RequireFromString("9.99"),
		Image:       "cable.png",
	}
	require.NoError(t, repo.Create(context.Background(), p))

	newPrice := decimal.RequireFromString("11.49")
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.True(t, resp.Price.Equal(newPrice))
	assert.Equal(t, "USB-C Cable", resp.Name)
	assert.Equal(t, "1 meter", resp.Description)
	assert.Equal(t, "cable.png", resp.Image)
}

func TestProductService_Update_EmptyStringOverwrites(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewProductService(repo, nil)

	p := &model.Product{Name: "USB-C Cable", Description: "1 meter", Price: decimal.RequireFromString("9.99")}
	require.NoError(t, repo.Create(context.Background(), p))

	// A provided-but-empty field is an explicit overwrite, unlike an
	// absent one.
	empty := ""
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Description)
	assert.Equal(t, "USB-C Cable", resp.Name)
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo(), nil)
	name := "X"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	repo := newMockProductRepo()
	id := uuid.New()
	repo.products[id] = &model.Product{ID: id}
	svc := NewProductService(repo, nil)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, repo.products)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo(), nil)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}
