package store

import (
	"context"
	"errors"
	"time"

	"github.com/Ambrose2002/the-gem-shop/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxLineQuantity caps any single cart line regardless of stock.
const MaxLineQuantity = 99

// clampQuantity bounds a requested quantity to [0, min(MaxLineQuantity, stock)].
func clampQuantity(stock, requested int) int {
	if stock < 0 {
		stock = 0
	}
	limit := MaxLineQuantity
	if stock < limit {
		limit = stock
	}
	if requested < 0 {
		return 0
	}
	if requested > limit {
		return limit
	}
	return requested
}

// mergeQuantities folds a snapshot's lines into the existing lines,
// accumulating per product and capping at MaxLineQuantity before any stock
// is consulted. Negative snapshot quantities count as zero.
func mergeQuantities(existing []models.CartItem, lines []CartLineInput) map[string]int {
	wanted := make(map[string]int)
	for _, item := range existing {
		wanted[item.ProductID] = item.Quantity
	}
	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		q := line.Quantity
		if q < 0 {
			q = 0
		}
		total := wanted[line.ProductID] + q
		if total > MaxLineQuantity {
			total = MaxLineQuantity
		}
		wanted[line.ProductID] = total
	}
	return wanted
}

// mergedLines clamps the wanted quantities against live stock and drops every
// line that ends at zero. Products absent from stockByID (missing, draft or
// soft-deleted) have no stock and fall out here.
func mergedLines(cartID string, wanted map[string]int, stockByID map[string]int, now time.Time) []models.CartItem {
	rows := make([]models.CartItem, 0, len(wanted))
	for id, q := range wanted {
		clamped := clampQuantity(stockByID[id], q)
		if clamped <= 0 {
			continue
		}
		rows = append(rows, models.CartItem{
			CartID:    cartID,
			ProductID: id,
			Quantity:  clamped,
			AddedAt:   now,
		})
	}
	return rows
}

type CartGormStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartGormStore {
	return &CartGormStore{db: db}
}

// ensureCart finds or lazily creates the owner's active cart. The unique
// index on user_id resolves concurrent creation; losers re-read the winner's row.
func (s *CartGormStore) ensureCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, Status: models.CartStatusActive}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// liveStock treats missing, draft and soft-deleted products as having no stock.
func (s *CartGormStore) liveStock(ctx context.Context, productID string) (int, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", productID, models.ProductStatusPublished).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if product.Stock < 0 {
		return 0, nil
	}
	return product.Stock, nil
}

func (s *CartGormStore) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *CartGormStore) Add(ctx context.Context, userID, productID string, requested int) (LineState, error) {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return LineState{}, err
	}
	stock, err := s.liveStock(ctx, productID)
	if err != nil {
		return LineState{}, err
	}

	current := 0
	var existing models.CartItem
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&existing).Error
	if err == nil {
		current = existing.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LineState{}, err
	}

	return s.writeLine(ctx, cart.ID, productID, clampQuantity(stock, current+requested), stock)
}

func (s *CartGormStore) SetQuantity(ctx context.Context, userID, productID string, requested int) (LineState, error) {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return LineState{}, err
	}
	stock, err := s.liveStock(ctx, productID)
	if err != nil {
		return LineState{}, err
	}
	return s.writeLine(ctx, cart.ID, productID, clampQuantity(stock, requested), stock)
}

// writeLine upserts the line keyed on (cart_id, product_id), or deletes it
// when the clamped quantity reaches zero.
func (s *CartGormStore) writeLine(ctx context.Context, cartID, productID string, quantity, stock int) (LineState, error) {
	if quantity <= 0 {
		if err := s.db.WithContext(ctx).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			return LineState{}, err
		}
		return LineState{Quantity: 0, Stock: stock}, nil
	}

	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "added_at"}),
	}).Create(&item).Error; err != nil {
		return LineState{}, err
	}
	return LineState{Quantity: quantity, Stock: stock}, nil
}

// Remove deletes a line unconditionally; removing an absent line is not an error.
func (s *CartGormStore) Remove(ctx context.Context, userID, productID string) error {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{}).Error
}

// Merge folds a client-held cart snapshot into the durable cart. Quantities
// accumulate line by line and are clamped against live stock; products that
// are missing, draft, soft-deleted or out of stock are dropped entirely.
func (s *CartGormStore) Merge(ctx context.Context, userID string, lines []CartLineInput) error {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return err
	}

	var existing []models.CartItem
	if err := s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Find(&existing).Error; err != nil {
		return err
	}

	wanted := mergeQuantities(existing, lines)

	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}

	stockByID := make(map[string]int, len(ids))
	if len(ids) > 0 {
		var products []models.Product
		if err := s.db.WithContext(ctx).
			Where("id IN ? AND status = ?", ids, models.ProductStatusPublished).
			Find(&products).Error; err != nil {
			return err
		}
		for _, p := range products {
			stockByID[p.ID] = p.Stock
		}
	}

	rows := mergedLines(cart.ID, wanted, stockByID, time.Now())

	// Replace the snapshot as delete-then-upsert in one transaction, keyed on
	// (cart_id, product_id), so concurrent merges cannot double-apply.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "added_at"}),
		}).Create(&rows).Error
	})
}

func (s *CartGormStore) Clear(ctx context.Context, userID string) error {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("cart_id = ?", cart.ID).
		Delete(&models.CartItem{}).Error
}
