package categoryControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/models"
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
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	return db
}

func categoryTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/categories", GetAllCategories(db))
	r.GET("/api/categories/:id", GetCategoryByID(db))
	r.POST("/api/categories", CreateCategory(db))
	return r
}

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)
	r := categoryTestRouter(db)

	payload, _ := json.Marshal(gin.H{
		"name":        "Fruits",
		"description": "Fresh farm-grown fruits",
		"imageUrl":    "https://example.com/images/fruits.jpg",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var category models.Category
	require.NoError(t, db.First(&category, "name = ?", "Fruits").Error)
	assert.NotEmpty(t, category.ID)
}

func TestCreateCategoryMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := categoryTestRouter(db)

	payload, _ := json.Marshal(gin.H{"name": "Fruits"})
	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllCategoriesSortedByName(t *testing.T) {
	db := setupTestDB(t)
	r := categoryTestRouter(db)
	require.NoError(t, models.SeedDefaultCategories(db))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 5)
	assert.Equal(t, "Dairy", categories[0].Name)
}

func TestSeedDefaultCategoriesIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, models.SeedDefaultCategories(db))
	require.NoError(t, models.SeedDefaultCategories(db))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestGetCategoryByIDWithProducts(t *testing.T) {
	db := setupTestDB(t)
	r := categoryTestRouter(db)

	category := models.Category{Name: "Fruits", Description: "d", ImageURL: "u"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Product{
		Title:      "Avocados",
		OwnerID:    "seller-1",
		CategoryID: category.ID,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/"+category.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	require.Len(t, fetched.Products, 1)
	assert.Equal(t, "Avocados", fetched.Products[0].Title)
}

func TestGetCategoryByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := categoryTestRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/categories/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
