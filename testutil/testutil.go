// Package testutil holds shared helpers for controller and middleware tests:
// an in-memory database, a wired router, fixture users and a fake payment
// provider.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockroomhq/inventory-api/config"
	authControllers "github.com/stockroomhq/inventory-api/controllers/auth"
	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/payment"
	"github.com/stockroomhq/inventory-api/routes"
)

// DefaultPassword is the password every fixture user gets.
const DefaultPassword = "password1234"

// NewConfig returns a config suitable for tests.
func NewConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		Env:               "test",
		JWTSecret:         "test-secret",
		JWTExpiresIn:      time.Hour,
		PaystackSecretKey: "sk_test_secret",
		FrontendURL:       "http://localhost:3000",
		RateLimitRPS:      1000,
		RateLimitBurst:    1000,
		UploadDir:         "/tmp/inventory-api-test-uploads",
	}
}

// NewDB opens a fresh in-memory SQLite database and migrates the schema.
// Each call gets its own named database so tests stay isolated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// NewRouter wires the full route tree the way main does.
func NewRouter(db *gorm.DB, gateway *payment.Client, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return routes.NewRouter(db, gateway, cfg)
}

// CreateUser persists a fixture user with DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Role: role}
	require.NoError(t, user.SetPassword(DefaultPassword))
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProduct persists a fixture product owned by the given user.
func CreateProduct(t *testing.T, db *gorm.DB, owner *models.User, name string, price float64, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "fixture product description",
		Price:       price,
		Quantity:    quantity,
		Category:    "fixtures",
		CreatedByID: owner.ID,
		Active:      true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// Token signs a bearer token for the user.
func Token(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	token, err := authControllers.SignToken(cfg, user.ID)
	require.NoError(t, err)
	return token
}

// Request performs a JSON request against the router. token may be empty.
func Request(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded JSON response body.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// FakePaystack is a stand-in for the provider's transaction API.
type FakePaystack struct {
	Server *httptest.Server

	// VerifyStatus is returned from the verify endpoint. Defaults to
	// "success".
	VerifyStatus string
	// InitializeCalls counts checkout sessions created.
	InitializeCalls int
	// FailInitialize makes the initialize endpoint return an error.
	FailInitialize bool
}

// NewFakePaystack starts the fake provider; the caller owns shutdown via
// t.Cleanup.
func NewFakePaystack(t *testing.T) *FakePaystack {
	t.Helper()
	f := &FakePaystack{VerifyStatus: "success"}

	mux := http.NewServeMux()
	mux.HandleFunc("/transaction/initialize", func(w http.ResponseWriter, r *http.Request) {
		f.InitializeCalls++
		if f.FailInitialize {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"status": false, "message": "Invalid amount",
			})
			return
		}
		var req payment.InitializeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.paystack.com/" + req.Reference,
				"access_code":       "access_" + req.Reference,
				"reference":         req.Reference,
			},
		})
	})
	mux.HandleFunc("/transaction/verify/", func(w http.ResponseWriter, r *http.Request) {
		reference := r.URL.Path[len("/transaction/verify/"):]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"id":        4242,
				"status":    f.VerifyStatus,
				"reference": reference,
			},
		})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a payment client pointed at the fake provider.
func (f *FakePaystack) Client(cfg *config.Config) *payment.Client {
	return payment.NewClient(cfg.PaystackSecretKey, f.Server.URL)
}
