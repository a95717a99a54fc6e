package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carlosrios23/ecommerce-backend-2/models"
)

const testUserID = "user-1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

// newCartRouter mounts the cart routes behind a stub auth middleware that
// injects the test user's identity.
func newCartRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	carrito := r.Group("/api/carrito")
	carrito.Use(func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Set("role", models.RoleUser)
	})
	{
		carrito.GET("", GetOrCreateCart(db))
		carrito.POST("/items", AddCartItem(db))
		carrito.PUT("/items/:productoId", UpdateCartItemQuantity(db))
		carrito.DELETE("/items/:productoId", RemoveCartItem(db))
		carrito.POST("/comprar", Checkout(db))
		carrito.DELETE("/vaciar", ClearCart(db))
	}
	return r
}

func createCart(t *testing.T, db *gorm.DB) *models.Cart {
	t.Helper()
	cart := &models.Cart{UserID: testUserID}
	require.NoError(t, db.Create(cart).Error)
	return cart
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Description: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartItems(t *testing.T, db *gorm.DB, cartID uint) []models.CartItem {
	t.Helper()
	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cartID).Order("id").Find(&items).Error)
	return items
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func TestGetOrCreateCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)

	w := do(r, http.MethodGet, "/api/carrito", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", testUserID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Second access returns the same cart instead of creating another.
	w = do(r, http.MethodGet, "/api/carrito", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", testUserID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Zapatos", 49.99, 10)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 2})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)
	assert.Equal(t, "Zapatos", items[0].Name)
	assert.Equal(t, 49.99, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)

	// Catalog changes do not refresh the snapshot.
	require.NoError(t, db.Model(p).Updates(map[string]any{"name": "Botas", "price": 99.99}).Error)
	w = do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 1})
	require.Equal(t, http.StatusOK, w.Code)

	items = cartItems(t, db, cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "Zapatos", items[0].Name)
	assert.Equal(t, 49.99, items[0].Price)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	p := createProduct(t, db, "Zapatos", 10, 5)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": 999, "cantidad": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItemInsufficientStockLeavesCartUnchanged(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 2)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 5})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Camisa")
	assert.Contains(t, w.Body.String(), "2")

	assert.Empty(t, cartItems(t, db, cart.ID))
}

// The stock check on add compares only the incremental quantity against live
// stock, never the resulting cart total. With stock 5, adding 3 twice yields
// a quantity of 6.
func TestAddItemChecksDeltaNotTotal(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Gorra", 15, 5)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 3})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)

	// A single add larger than stock still fails.
	w = do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)
	p := createProduct(t, db, "Gorra", 15, 5)

	w := do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantityZeroRemovesItem(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p1 := createProduct(t, db, "Camisa", 20, 10)
	p2 := createProduct(t, db, "Gorra", 15, 10)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p1.ID, "cantidad": 2})
	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p2.ID, "cantidad": 1})
	require.Len(t, cartItems(t, db, cart.ID), 2)

	w := do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p1.ID), gin.H{"cantidad": 0})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, p2.ID, items[0].ProductID)
}

func TestUpdateQuantityChecksDeltaAgainstStock(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 3})

	// delta = 9 - 3 = 6 > stock 5
	w := do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p.ID), gin.H{"cantidad": 9})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Camisa")

	// delta = 8 - 3 = 5 <= stock 5
	w = do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p.ID), gin.H{"cantidad": 8})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, cart.ID)
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)

	// Shrinking never needs stock.
	w = do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p.ID), gin.H{"cantidad": 1})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateQuantityMissingItem(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	w := do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p.ID), gin.H{"cantidad": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuantityProductGoneFromCatalog(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 2})
	require.NoError(t, db.Delete(&models.Product{}, p.ID).Error)

	w := do(r, http.MethodPut, fmt.Sprintf("/api/carrito/items/%d", p.ID), gin.H{"cantidad": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuantityInvalidProductID(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)

	w := do(r, http.MethodPut, "/api/carrito/items/abc", gin.H{"cantidad": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 2})

	w := do(r, http.MethodDelete, fmt.Sprintf("/api/carrito/items/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartItems(t, db, cart.ID))

	// Removing it again is a NotFound.
	w = do(r, http.MethodDelete, fmt.Sprintf("/api/carrito/items/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p1 := createProduct(t, db, "Camisa", 20, 5)
	p2 := createProduct(t, db, "Gorra", 15, 5)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p1.ID, "cantidad": 1})
	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p2.ID, "cantidad": 1})

	w := do(r, http.MethodDelete, "/api/carrito/vaciar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartItems(t, db, cart.ID))
}

func TestClearCartWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)

	w := do(r, http.MethodDelete, "/api/carrito/vaciar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutDecrementsStockAndEmptiesCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p1 := createProduct(t, db, "Camisa", 20, 5)
	p2 := createProduct(t, db, "Gorra", 15, 8)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p1.ID, "cantidad": 3})
	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p2.ID, "cantidad": 8})

	w := do(r, http.MethodPost, "/api/carrito/comprar", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, productStock(t, db, p1.ID))
	assert.Equal(t, 0, productStock(t, db, p2.ID))
	assert.Empty(t, cartItems(t, db, cart.ID))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	w := do(r, http.MethodPost, "/api/carrito/comprar", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "vacío")

	assert.Equal(t, 5, productStock(t, db, p.ID))
}

// Stock decrements are applied per item with no transaction: when a later
// item fails, decrements already applied in the same pass remain in place.
func TestCheckoutInsufficientStockAbortsMidway(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p1 := createProduct(t, db, "Camisa", 20, 5)
	p2 := createProduct(t, db, "Gorra", 15, 1)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p1.ID, "cantidad": 2})
	// Inflate the second item past its stock via two delta-checked adds.
	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p2.ID, "cantidad": 1})
	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p2.ID, "cantidad": 1})

	w := do(r, http.MethodPost, "/api/carrito/comprar", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Gorra")

	assert.Equal(t, 3, productStock(t, db, p1.ID)) // already decremented
	assert.Equal(t, 1, productStock(t, db, p2.ID)) // untouched
	assert.Len(t, cartItems(t, db, cart.ID), 2)    // cart kept
}

func TestCheckoutProductRemovedFromCatalog(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db)
	cart := createCart(t, db)
	p := createProduct(t, db, "Camisa", 20, 5)

	do(r, http.MethodPost, "/api/carrito/items", gin.H{"productoId": p.ID, "cantidad": 2})
	require.NoError(t, db.Delete(&models.Product{}, p.ID).Error)

	w := do(r, http.MethodPost, "/api/carrito/comprar", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, cartItems(t, db, cart.ID), 1)
}
