package productControllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/inventory-api/models"
	"github.com/stockroomhq/inventory-api/pkg/response"
	"github.com/stockroomhq/inventory-api/testutil"
)

func productBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": "A rather detailed description",
		"price":       19.99,
		"quantity":    10,
		"category":    "gadgets",
	}
}

func TestCreateProductAdminOnly(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)

	w := testutil.Request(t, r, http.MethodPost, "/api/products",
		testutil.Token(t, cfg, user), productBody("Widget"))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Request(t, r, http.MethodPost, "/api/products",
		testutil.Token(t, cfg, admin), productBody("Widget"))
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.Where("name = ?", "Widget").First(&product).Error)
	assert.Equal(t, admin.ID, product.CreatedByID)
	assert.True(t, product.Active)
}

func TestCreateProductValidation(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	token := testutil.Token(t, cfg, admin)

	body := productBody("Widget")
	body["price"] = -5.0
	w := testutil.Request(t, r, http.MethodPost, "/api/products", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = productBody("Widget")
	body["description"] = "too short"
	w = testutil.Request(t, r, http.MethodPost, "/api/products", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSoftDeleteHidesProduct(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	product := testutil.CreateProduct(t, db, admin, "Widget", 19.99, 10)
	path := fmt.Sprintf("/api/products/%d", product.ID)

	w := testutil.Request(t, r, http.MethodDelete, path, testutil.Token(t, cfg, admin), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Gone from reads, still present in storage.
	w = testutil.Request(t, r, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body response.Body
	w = testutil.Request(t, r, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	assert.Equal(t, float64(0), body.Data.(map[string]interface{})["total"])

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.False(t, stored.Active)
}

func TestUpdateProductOwnership(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com", models.RoleAdmin)
	other := testutil.CreateUser(t, db, "Other", "other@example.com", models.RoleAdmin)
	product := testutil.CreateProduct(t, db, owner, "Widget", 19.99, 10)
	path := fmt.Sprintf("/api/products/%d", product.ID)

	// Another admin may update someone else's product.
	w := testutil.Request(t, r, http.MethodPatch, path, testutil.Token(t, cfg, other),
		map[string]interface{}{"price": 25.0})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 25.0, stored.Price)
}

func TestListProductsFilters(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	testutil.CreateProduct(t, db, admin, "Cheap Widget", 5, 10)
	testutil.CreateProduct(t, db, admin, "Premium Widget", 100, 10)
	testutil.CreateProduct(t, db, admin, "Gizmo", 50, 10)

	var body response.Body

	w := testutil.Request(t, r, http.MethodGet, "/api/products?search=widget", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	assert.Equal(t, float64(2), body.Data.(map[string]interface{})["total"])

	w = testutil.Request(t, r, http.MethodGet, "/api/products?minPrice=40&maxPrice=60", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	assert.Equal(t, float64(1), body.Data.(map[string]interface{})["total"])

	w = testutil.Request(t, r, http.MethodGet, "/api/products?page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(2), data["totalPages"])
	assert.Len(t, data["products"], 2)
}

func TestCheckStock(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	product := testutil.CreateProduct(t, db, admin, "Widget", 19.99, 3)
	token := testutil.Token(t, cfg, user)

	var body response.Body
	w := testutil.Request(t, r, http.MethodPost, "/api/products/check-stock", token,
		map[string]interface{}{"productId": product.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, true, data["inStock"])
	assert.Equal(t, float64(3), data["availableQuantity"])

	w = testutil.Request(t, r, http.MethodPost, "/api/products/check-stock", token,
		map[string]interface{}{"productId": product.ID, "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &body)
	assert.Equal(t, false, body.Data.(map[string]interface{})["inStock"])
}

func TestProductStatsAdminOnly(t *testing.T) {
	cfg := testutil.NewConfig()
	db := testutil.NewDB(t)
	r := testutil.NewRouter(db, testutil.NewFakePaystack(t).Client(cfg), cfg)

	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := testutil.CreateUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	testutil.CreateProduct(t, db, admin, "Widget", 10, 5)
	testutil.CreateProduct(t, db, admin, "Gizmo", 30, 2)

	w := testutil.Request(t, r, http.MethodGet, "/api/products/stats/categories",
		testutil.Token(t, cfg, user), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Request(t, r, http.MethodGet, "/api/products/stats/categories",
		testutil.Token(t, cfg, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body response.Body
	testutil.Decode(t, w, &body)
	stats := body.Data.(map[string]interface{})["stats"].([]interface{})
	require.Len(t, stats, 1) // both fixtures share one category
	entry := stats[0].(map[string]interface{})
	assert.Equal(t, float64(2), entry["numProducts"])
	assert.Equal(t, float64(20), entry["avgPrice"])
	assert.Equal(t, float64(7), entry["totalQuantity"])
}
