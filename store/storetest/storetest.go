// Package storetest provides testify mocks for the store interfaces.
package storetest

import (
	"context"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/stretchr/testify/mock"
)

type CartStore struct {
	mock.Mock
}

func (m *CartStore) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]models.CartItem)
	return items, args.Error(1)
}

func (m *CartStore) Add(ctx context.Context, userID, productID string, requested int) (store.LineState, error) {
	args := m.Called(ctx, userID, productID, requested)
	return args.Get(0).(store.LineState), args.Error(1)
}

func (m *CartStore) SetQuantity(ctx context.Context, userID, productID string, requested int) (store.LineState, error) {
	args := m.Called(ctx, userID, productID, requested)
	return args.Get(0).(store.LineState), args.Error(1)
}

func (m *CartStore) Remove(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *CartStore) Merge(ctx context.Context, userID string, lines []store.CartLineInput) error {
	return m.Called(ctx, userID, lines).Error(0)
}

func (m *CartStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type ProductStore struct {
	mock.Mock
}

func (m *ProductStore) FindPublished(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductStore) PublishedByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	args := m.Called(ctx, ids)
	products, _ := args.Get(0).(map[string]*models.Product)
	return products, args.Error(1)
}

func (m *ProductStore) Packages(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	packages, _ := args.Get(0).([]models.Product)
	return packages, args.Error(1)
}

func (m *ProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

type OrderStore struct {
	mock.Mock
}

func (m *OrderStore) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return m.Called(ctx, order, items).Error(0)
}

func (m *OrderStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *OrderStore) MarkPaid(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
