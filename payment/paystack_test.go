package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	var gotAuth string
	var gotReq InitializeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         gotReq.Reference,
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL)
	tx, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "ada@example.com",
		Amount:      4398,
		Reference:   "order_1_ref",
		CallbackURL: "http://localhost:3000/orders/confirm/",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	assert.Equal(t, int64(4398), gotReq.Amount)
	assert.Equal(t, "https://checkout.paystack.com/abc123", tx.AuthorizationURL)
	assert.Equal(t, "order_1_ref", tx.Reference)
}

func TestInitializeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": false, "message": "Invalid amount",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL)
	_, err := client.Initialize(context.Background(), InitializeRequest{
		Email: "ada@example.com", Amount: -1, Reference: "bad",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestInitializeDeclinedEnvelope(t *testing.T) {
	// A 200 response whose envelope status is false is still an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": false, "message": "Merchant not live",
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL)
	_, err := client.Initialize(context.Background(), InitializeRequest{
		Email: "ada@example.com", Amount: 100, Reference: "ref",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Merchant not live")
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/order_1_ref", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"id":        4242,
				"status":    "success",
				"reference": "order_1_ref",
			},
		})
	}))
	defer srv.Close()

	client := NewClient("sk_test_xyz", srv.URL)
	tx, err := client.Verify(context.Background(), "order_1_ref")
	require.NoError(t, err)
	assert.Equal(t, int64(4242), tx.ID)
	assert.Equal(t, "success", tx.Status)
}

func TestDefaultBaseURL(t *testing.T) {
	client := NewClient("sk_test_xyz", "")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
