package paystackControllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"reference":         "order-1",
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL, time.Second)
	url, err := client.Initialize(context.Background(), "ama@example.com", 5000, "GHS", "order-1",
		"https://shop.example/payment/callback", map[string]interface{}{"order_id": "order-1"})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", url)
	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	assert.Equal(t, "ama@example.com", gotPayload["email"])
	assert.Equal(t, float64(5000), gotPayload["amount"])
	assert.Equal(t, "order-1", gotPayload["reference"])
}

func TestInitializeProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid amount",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL, time.Second)
	_, err := client.Initialize(context.Background(), "ama@example.com", 0, "GHS", "order-1", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestInitializeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad_key", srv.URL, time.Second)
	_, err := client.Initialize(context.Background(), "ama@example.com", 5000, "GHS", "order-1", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/order-1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"status":   "success",
				"amount":   5000,
				"currency": "GHS",
				"customer": map[string]interface{}{"email": "ama@example.com"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL, time.Second)
	tx, err := client.Verify(context.Background(), "order-1")

	require.NoError(t, err)
	assert.Equal(t, "success", tx.Status)
	assert.Equal(t, int64(5000), tx.AmountCents)
	assert.Equal(t, "GHS", tx.Currency)
	assert.Equal(t, "ama@example.com", tx.CustomerEmail)
}

func TestVerifyProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL, time.Second)
	_, err := client.Verify(context.Background(), "missing-ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction reference not found")
}
