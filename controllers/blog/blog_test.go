package blogControllers

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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.BlogPost{}))
	return db
}

func blogTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/posts", GetPosts(db))
	r.GET("/api/posts/:id", GetPostByID(db))
	r.POST("/api/posts", middleware.ValidateToken, CreatePost(db, nil))
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

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	db := setupTestDB(t)
	r := blogTestRouter(db)
	require.NoError(t, db.Create(&models.User{
		ID:      "author-1",
		Name:    "Jane Wanjiku",
		Picture: "https://img.example.com/jane.jpg",
	}).Error)

	payload, _ := json.Marshal(gin.H{
		"title":   "Storing maize through the dry season",
		"content": "Dry the cobs fully before shelling...",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, "author-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post models.BlogPost
	require.NoError(t, db.First(&post, "author_id = ?", "author-1").Error)
	assert.Equal(t, "Jane Wanjiku", post.AuthorName)
	assert.Equal(t, "https://img.example.com/jane.jpg", post.AuthorImage)
}

func TestCreatePostRequiresContent(t *testing.T) {
	db := setupTestDB(t)
	r := blogTestRouter(db)

	payload, _ := json.Marshal(gin.H{"title": "No content"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, "author-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	r := blogTestRouter(db)

	older := models.BlogPost{Title: "First", Content: "c", AuthorID: "a", CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.BlogPost{Title: "Second", Content: "c", AuthorID: "a", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "Second", posts[0].Title)
}

func TestGetPostByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := blogTestRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/ghost", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
