package store

import (
	"context"

	"github.com/Ambrose2002/the-gem-shop/models"
)

// CartLineInput is one (product, quantity) pair from a client-held cart
// snapshot, merged into the durable cart after sign-in.
type CartLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// LineState reports the durable state of a cart line after a mutation, so
// callers can reflect the clamped quantity and live stock back to the UI.
type LineState struct {
	Quantity int `json:"quantity"`
	Stock    int `json:"stock"`
}

type CartStore interface {
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	Add(ctx context.Context, userID, productID string, requested int) (LineState, error)
	SetQuantity(ctx context.Context, userID, productID string, requested int) (LineState, error)
	Remove(ctx context.Context, userID, productID string) error
	Merge(ctx context.Context, userID string, lines []CartLineInput) error
	Clear(ctx context.Context, userID string) error
}

type ProductStore interface {
	// FindPublished returns (nil, nil) for missing, draft or soft-deleted products.
	FindPublished(ctx context.Context, id string) (*models.Product, error)
	PublishedByIDs(ctx context.Context, ids []string) (map[string]*models.Product, error)
	// Packages returns the live products in the package category, the
	// server-side allow-list for checkout add-ons.
	Packages(ctx context.Context) ([]models.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
}

type OrderStore interface {
	// CreateWithItems persists the order and its line snapshots as one unit.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	// FindByID returns (nil, nil) when the order does not exist.
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// MarkPaid transitions pending -> paid and reports whether this call won
	// the transition; false means another caller already applied it.
	MarkPaid(ctx context.Context, id string) (bool, error)
}
