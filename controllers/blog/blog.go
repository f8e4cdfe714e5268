package blogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kisinja/smart-farmer/auth"
	"github.com/kisinja/smart-farmer/middleware"
	"github.com/kisinja/smart-farmer/models"
	"gorm.io/gorm"
)

type CreatePostInput struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// POST /api/posts
// Stores an author snapshot with the post so the blog renders without
// identity-provider lookups.
func CreatePost(db *gorm.DB, kinde *auth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CreatePostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var authorName, authorImage string
		var user models.User
		if err := db.First(&user, "id = ?", authorID).Error; err == nil {
			authorName, authorImage = user.Name, user.Picture
		} else if kinde != nil {
			if profile, err := kinde.GetUser(c.Request.Context(), authorID); err == nil {
				authorName, authorImage = profile.DisplayName(), profile.Picture
			}
		}

		post := models.BlogPost{
			Title:       input.Title,
			Content:     input.Content,
			ImageURL:    input.ImageURL,
			AuthorID:    authorID,
			AuthorName:  authorName,
			AuthorImage: authorImage,
		}

		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}

		c.JSON(http.StatusCreated, post)
	}
}

// GET /api/posts
func GetPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GET /api/posts/:id
func GetPostByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var post models.BlogPost
		if err := db.First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}

		c.JSON(http.StatusOK, post)
	}
}
