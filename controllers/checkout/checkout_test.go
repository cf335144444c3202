package checkoutControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store/storetest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name       string
		req        CheckoutRequest
		wantFields []string
		wantMode   models.DeliveryPayment
	}{
		{
			name:     "valid international phone",
			req:      CheckoutRequest{Phone: "+233241234567", City: "Accra", Address: "12 Oxford St"},
			wantMode: models.DeliveryPaymentBefore,
		},
		{
			name:     "valid local phone",
			req:      CheckoutRequest{Phone: "0241234567", City: "Kumasi", Address: "Adum Rd"},
			wantMode: models.DeliveryPaymentBefore,
		},
		{
			name:       "short phone rejected",
			req:        CheckoutRequest{Phone: "12345", City: "Accra", Address: "12 Oxford St"},
			wantFields: []string{"phone"},
		},
		{
			name:       "foreign phone rejected",
			req:        CheckoutRequest{Phone: "+14155550123", City: "Accra", Address: "12 Oxford St"},
			wantFields: []string{"phone"},
		},
		{
			name:       "missing city and address",
			req:        CheckoutRequest{Phone: "0241234567", City: "A", Address: ""},
			wantFields: []string{"city", "address"},
		},
		{
			name:     "after delivery accepted",
			req:      CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St", DeliveryPayment: "after"},
			wantMode: models.DeliveryPaymentAfter,
		},
		{
			name:       "unknown delivery mode rejected",
			req:        CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St", DeliveryPayment: "later"},
			wantFields: []string{"deliveryPayment"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, problems := validateContact(tt.req)
			if len(tt.wantFields) == 0 {
				assert.Empty(t, problems)
				assert.Equal(t, tt.wantMode, mode)
				return
			}
			for _, field := range tt.wantFields {
				assert.Contains(t, problems, field)
			}
		})
	}
}

func TestValidatePackages(t *testing.T) {
	allowed := []models.Product{
		{ID: "pkg-1", Title: "Gift Box", PriceCents: 1500, Stock: 5},
		{ID: "pkg-2", Title: "Velvet Pouch", PriceCents: 500, Stock: 1},
	}
	lineQty := map[string]int{"prod-1": 2, "prod-2": 1}

	t.Run("valid selection priced", func(t *testing.T) {
		items, problems := validatePackages([]PackageSelection{
			{LineProductID: "prod-1", PackageID: "pkg-1", Quantity: 2},
		}, lineQty, allowed)
		require.Empty(t, problems)
		require.Len(t, items, 1)
		assert.Equal(t, int64(3000), items[0].LineTotalCents)
		assert.Equal(t, "Gift Box", items[0].Title)
	})

	t.Run("quantity above parent line rejected", func(t *testing.T) {
		_, problems := validatePackages([]PackageSelection{
			{LineProductID: "prod-1", PackageID: "pkg-1", Quantity: 3},
		}, lineQty, allowed)
		assert.Contains(t, problems, "pkg-1")
	})

	t.Run("unknown package rejected", func(t *testing.T) {
		_, problems := validatePackages([]PackageSelection{
			{LineProductID: "prod-1", PackageID: "not-a-package", Quantity: 1},
		}, lineQty, allowed)
		assert.Contains(t, problems, "not-a-package")
	})

	t.Run("cumulative demand above package stock rejected", func(t *testing.T) {
		_, problems := validatePackages([]PackageSelection{
			{LineProductID: "prod-1", PackageID: "pkg-2", Quantity: 1},
			{LineProductID: "prod-2", PackageID: "pkg-2", Quantity: 1},
		}, lineQty, allowed)
		assert.Contains(t, problems, "pkg-2")
	})

	t.Run("selection for product not in cart rejected", func(t *testing.T) {
		_, problems := validatePackages([]PackageSelection{
			{LineProductID: "prod-999", PackageID: "pkg-1", Quantity: 1},
		}, lineQty, allowed)
		assert.Contains(t, problems, "pkg-1")
	})
}

type fakeInitializer struct {
	url  string
	err  error
	refs []string
}

func (f *fakeInitializer) Initialize(_ context.Context, _ string, _ int64, _, reference, _ string, _ map[string]interface{}) (string, error) {
	f.refs = append(f.refs, reference)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func checkoutRouter(deps Deps, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/checkout", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
			c.Set("email", "ama@example.com")
		}
		Checkout(deps)(c)
	})
	return r
}

func postCheckout(t *testing.T, r *gin.Engine, body CheckoutRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutRejectsInvalidContactBeforeTouchingCart(t *testing.T) {
	carts := new(storetest.CartStore)
	orders := new(storetest.OrderStore)
	deps := Deps{
		Carts:    carts,
		Orders:   orders,
		Payments: &fakeInitializer{url: "https://pay.example/redirect"},
		Logger:   zap.NewNop(),
		SiteURL:  "https://shop.example",
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{Phone: "12345", City: "Accra", Address: "12 Oxford St"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	carts.AssertNotCalled(t, "Items", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutRequiresAuth(t *testing.T) {
	deps := Deps{Logger: zap.NewNop(), Currency: "GHS"}
	r := checkoutRouter(deps, "")

	w := postCheckout(t, r, CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := new(storetest.CartStore)
	carts.On("Items", mock.Anything, "user-1").Return([]models.CartItem{}, nil)
	orders := new(storetest.OrderStore)

	deps := Deps{
		Carts:    carts,
		Orders:   orders,
		Payments: &fakeInitializer{url: "https://pay.example/redirect"},
		Logger:   zap.NewNop(),
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orders.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutCreatesOrderAndReturnsRedirect(t *testing.T) {
	carts := new(storetest.CartStore)
	carts.On("Items", mock.Anything, "user-1").Return([]models.CartItem{
		{ProductID: "prod-1", Quantity: 2},
		{ProductID: "prod-gone", Quantity: 1},
	}, nil)

	products := new(storetest.ProductStore)
	products.On("PublishedByIDs", mock.Anything, []string{"prod-1", "prod-gone"}).Return(map[string]*models.Product{
		"prod-1": {ID: "prod-1", Title: "Amber Ring", PriceCents: 2500, Stock: 10},
	}, nil)

	orders := new(storetest.OrderStore)
	orders.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*models.Order)
			order.ID = "order-1"
			items := args.Get(2).([]models.OrderItem)
			require.Len(t, items, 1)
			assert.Equal(t, "Amber Ring", items[0].Title)
			assert.Equal(t, int64(5000), items[0].LineTotalCents)
			assert.Equal(t, int64(5000), order.AmountCents)
			assert.Equal(t, models.OrderStatusPending, order.Status)
		}).
		Return(nil)

	payments := &fakeInitializer{url: "https://pay.example/redirect"}
	deps := Deps{
		Carts:    carts,
		Products: products,
		Orders:   orders,
		Payments: payments,
		Logger:   zap.NewNop(),
		SiteURL:  "https://shop.example",
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/redirect", resp["url"])
	assert.Equal(t, []string{"order-1"}, payments.refs)
	orders.AssertExpectations(t)
}

func TestCheckoutWithPackages(t *testing.T) {
	carts := new(storetest.CartStore)
	carts.On("Items", mock.Anything, "user-1").Return([]models.CartItem{
		{ProductID: "prod-1", Quantity: 2},
	}, nil)

	products := new(storetest.ProductStore)
	products.On("PublishedByIDs", mock.Anything, []string{"prod-1"}).Return(map[string]*models.Product{
		"prod-1": {ID: "prod-1", Title: "Amber Ring", PriceCents: 2500, Stock: 10},
	}, nil)
	products.On("Packages", mock.Anything).Return([]models.Product{
		{ID: "pkg-1", Title: "Gift Box", PriceCents: 1500, Stock: 5},
	}, nil)

	orders := new(storetest.OrderStore)
	orders.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*models.Order)
			order.ID = "order-2"
			assert.Equal(t, int64(5000+3000), order.AmountCents)
			require.Len(t, args.Get(2).([]models.OrderItem), 2)
		}).
		Return(nil)

	deps := Deps{
		Carts:    carts,
		Products: products,
		Orders:   orders,
		Payments: &fakeInitializer{url: "https://pay.example/redirect"},
		Logger:   zap.NewNop(),
		SiteURL:  "https://shop.example",
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{
		Phone: "0241234567", City: "Accra", Address: "12 Oxford St",
		Packages: []PackageSelection{{LineProductID: "prod-1", PackageID: "pkg-1", Quantity: 2}},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	orders.AssertExpectations(t)
}

func TestCheckoutPackageOverParentQuantityRejected(t *testing.T) {
	carts := new(storetest.CartStore)
	carts.On("Items", mock.Anything, "user-1").Return([]models.CartItem{
		{ProductID: "prod-1", Quantity: 2},
	}, nil)

	products := new(storetest.ProductStore)
	products.On("PublishedByIDs", mock.Anything, []string{"prod-1"}).Return(map[string]*models.Product{
		"prod-1": {ID: "prod-1", Title: "Amber Ring", PriceCents: 2500, Stock: 10},
	}, nil)
	products.On("Packages", mock.Anything).Return([]models.Product{
		{ID: "pkg-1", Title: "Gift Box", PriceCents: 1500, Stock: 5},
	}, nil)

	orders := new(storetest.OrderStore)
	deps := Deps{
		Carts:    carts,
		Products: products,
		Orders:   orders,
		Payments: &fakeInitializer{url: "https://pay.example/redirect"},
		Logger:   zap.NewNop(),
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{
		Phone: "0241234567", City: "Accra", Address: "12 Oxford St",
		Packages: []PackageSelection{{LineProductID: "prod-1", PackageID: "pkg-1", Quantity: 3}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orders.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutPaymentInitFailureKeepsOrderPending(t *testing.T) {
	carts := new(storetest.CartStore)
	carts.On("Items", mock.Anything, "user-1").Return([]models.CartItem{
		{ProductID: "prod-1", Quantity: 1},
	}, nil)

	products := new(storetest.ProductStore)
	products.On("PublishedByIDs", mock.Anything, []string{"prod-1"}).Return(map[string]*models.Product{
		"prod-1": {ID: "prod-1", Title: "Amber Ring", PriceCents: 2500, Stock: 10},
	}, nil)

	orders := new(storetest.OrderStore)
	orders.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	deps := Deps{
		Carts:    carts,
		Products: products,
		Orders:   orders,
		Payments: &fakeInitializer{err: errors.New("provider down")},
		Logger:   zap.NewNop(),
		Currency: "GHS",
	}
	r := checkoutRouter(deps, "user-1")

	w := postCheckout(t, r, CheckoutRequest{Phone: "0241234567", City: "Accra", Address: "12 Oxford St"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	orders.AssertCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything)
}
