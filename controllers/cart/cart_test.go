package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func cartTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cart := r.Group("/api/user/cart", middleware.ValidateToken)
	cart.GET("", GetUserCart(db))
	cart.POST("", AddCartItem(db))
	cart.PATCH("", SetCartItemQuantity(db))
	cart.DELETE("", RemoveCartItem(db))
	return r
}

func testToken(t *testing.T, userID string) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, title string) models.Product {
	t.Helper()
	product := models.Product{Title: title, Price: decimal.NewFromInt(100), Stock: 10, OwnerID: "seller-1"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func cartItems(t *testing.T, db *gorm.DB, userID string) []models.CartItem {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error)
	return cart.Items
}

func TestAddCartItemCreatesCartLazily(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	product := seedProduct(t, db, "Avocados")
	token := testToken(t, "buyer-1")

	w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": product.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	items := cartItems(t, db, "buyer-1")
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddCartItemIncrementsExistingRow(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	product := seedProduct(t, db, "Avocados")
	token := testToken(t, "buyer-1")

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": product.ID})
		require.Equal(t, http.StatusOK, w.Code)
	}

	items := cartItems(t, db, "buyer-1")
	require.Len(t, items, 1, "re-adding must not duplicate the row")
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddCartItemRejectsUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	token := testToken(t, "buyer-1")

	w := doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": "ghost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetCartItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	product := seedProduct(t, db, "Avocados")
	token := testToken(t, "buyer-1")

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": product.ID})

	w := doJSON(t, r, http.MethodPatch, "/api/user/cart", token, gin.H{"productId": product.ID, "quantity": 7})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, "buyer-1")
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestSetCartItemQuantityRejectsZero(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	product := seedProduct(t, db, "Avocados")
	token := testToken(t, "buyer-1")

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": product.ID})

	w := doJSON(t, r, http.MethodPatch, "/api/user/cart", token, gin.H{"productId": product.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	items := cartItems(t, db, "buyer-1")
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	productA := seedProduct(t, db, "Avocados")
	productB := seedProduct(t, db, "Eggs")
	token := testToken(t, "buyer-1")

	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": productA.ID})
	doJSON(t, r, http.MethodPost, "/api/user/cart", token, gin.H{"productId": productB.ID})

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"productId": productA.ID})
	require.Equal(t, http.StatusOK, w.Code)

	items := cartItems(t, db, "buyer-1")
	require.Len(t, items, 1)
	assert.Equal(t, productB.ID, items[0].ProductID)
}

func TestRemoveCartItemWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	token := testToken(t, "buyer-1")

	w := doJSON(t, r, http.MethodDelete, "/api/user/cart", token, gin.H{"productId": "anything"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserCartEmptyWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)
	token := testToken(t, "buyer-1")

	w := doJSON(t, r, http.MethodGet, "/api/user/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart models.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart.Items)
}

func TestCartRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	r := cartTestRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/user/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
