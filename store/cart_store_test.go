package store

import (
	"testing"
	"time"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		requested int
		want      int
	}{
		{"within stock", 10, 5, 5},
		{"exactly stock", 10, 10, 10},
		{"over stock", 3, 7, 3},
		{"out of stock", 0, 4, 0},
		{"negative requested", 10, -1, 0},
		{"zero requested", 10, 0, 0},
		{"line cap", 500, 150, MaxLineQuantity},
		{"stock below cap wins", 40, 150, 40},
		{"negative stock treated as empty", -2, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampQuantity(tt.stock, tt.requested))
		})
	}
}

func TestMergeQuantities(t *testing.T) {
	existing := []models.CartItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-2", Quantity: 60},
	}
	lines := []CartLineInput{
		{ProductID: "prod-1", Quantity: 3},
		{ProductID: "prod-2", Quantity: 60},
		{ProductID: "prod-3", Quantity: 1},
		{ProductID: "prod-4", Quantity: -5},
		{ProductID: "", Quantity: 9},
	}

	wanted := mergeQuantities(existing, lines)

	assert.Equal(t, 5, wanted["prod-1"], "quantities accumulate per product")
	assert.Equal(t, MaxLineQuantity, wanted["prod-2"], "accumulated total is capped")
	assert.Equal(t, 1, wanted["prod-3"], "snapshot-only products come in")
	assert.Equal(t, 0, wanted["prod-4"], "negative snapshot quantities count as zero")
	assert.NotContains(t, wanted, "", "empty product ids are ignored")
}

func TestMergedLinesDropsDeadAndOutOfStockProducts(t *testing.T) {
	now := time.Now()
	wanted := map[string]int{
		"prod-live": 5,
		"prod-thin": 5,  // only 2 left
		"prod-out":  3,  // stock zero
		"prod-gone": 4,  // missing, draft or soft-deleted: not in stockByID
		"prod-none": 0,  // nothing requested
	}
	stockByID := map[string]int{
		"prod-live": 10,
		"prod-thin": 2,
		"prod-out":  0,
		"prod-none": 10,
	}

	rows := mergedLines("cart-1", wanted, stockByID, now)

	byProduct := make(map[string]models.CartItem, len(rows))
	for _, row := range rows {
		byProduct[row.ProductID] = row
	}
	require.Len(t, rows, 2)
	assert.Equal(t, 5, byProduct["prod-live"].Quantity)
	assert.Equal(t, 2, byProduct["prod-thin"].Quantity, "clamped to remaining stock")
	assert.NotContains(t, byProduct, "prod-out")
	assert.NotContains(t, byProduct, "prod-gone")
	assert.NotContains(t, byProduct, "prod-none")
	for _, row := range rows {
		assert.Equal(t, "cart-1", row.CartID)
		assert.Equal(t, now, row.AddedAt)
	}
}
