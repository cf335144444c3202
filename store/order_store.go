package store

import (
	"context"
	"errors"

	"github.com/Ambrose2002/the-gem-shop/models"
	"gorm.io/gorm"
)

type OrderGormStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderGormStore {
	return &OrderGormStore{db: db}
}

// CreateWithItems writes the order and its line snapshots in one transaction;
// a failed snapshot write rolls back the order so it can never become payable.
func (s *OrderGormStore) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) == 0 {
			return errors.New("order has no items")
		}
		return tx.Create(&items).Error
	})
}

func (s *OrderGormStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid applies the single pending -> paid transition. The status guard in
// the WHERE clause keeps concurrent webhook deliveries from re-applying it;
// the affected-row count tells the caller whether this delivery won.
func (s *OrderGormStore) MarkPaid(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
