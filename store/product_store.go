package store

import (
	"context"
	"errors"

	"github.com/Ambrose2002/the-gem-shop/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductGormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProductStore(db *gorm.DB, logger *zap.Logger) *ProductGormStore {
	return &ProductGormStore{db: db, logger: logger}
}

func (s *ProductGormStore) FindPublished(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Where("id = ? AND status = ?", id, models.ProductStatusPublished).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductGormStore) PublishedByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	byID := make(map[string]*models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, models.ProductStatusPublished).
		Find(&products).Error; err != nil {
		return nil, err
	}
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (s *ProductGormStore) Packages(ctx context.Context) ([]models.Product, error) {
	var packages []models.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("LOWER(c.name) = ?", models.PackageCategoryName).
		Where("products.status = ?", models.ProductStatusPublished).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// DecrementStock takes qty off a product's stock. The routine path is a
// conditional atomic UPDATE; when it cannot apply, a read-modify-write
// clamped at zero runs as a logged degraded path.
func (s *ProductGormStore) DecrementStock(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Unscoped().Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error == nil && res.RowsAffected > 0 {
		return nil
	}
	if res.Error != nil {
		s.logger.Warn("atomic stock decrement failed, using read-modify-write fallback",
			zap.String("product_id", id), zap.Int("quantity", qty), zap.Error(res.Error))
	} else {
		s.logger.Warn("stock below requested decrement, clamping to zero",
			zap.String("product_id", id), zap.Int("quantity", qty))
	}

	var product models.Product
	err := s.db.WithContext(ctx).Unscoped().First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	next := product.Stock - qty
	if next < 0 {
		next = 0
	}
	return s.db.WithContext(ctx).Unscoped().Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", next).Error
}
