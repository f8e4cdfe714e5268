package uploadController

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// HandleImageUpload stores an uploaded image on disk and returns its public URL.
// Clients put the returned URL into a product or category imageUrl field.
func HandleImageUpload(uploadDir string, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !imageExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
			return
		}

		// Sanitize filename: remove any special chars
		cleanName := unsafeChars.ReplaceAllString(file.Filename, "_")
		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), cleanName)

		if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload folder: %v", err),
			})
			return
		}

		savePath := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to save file: %v", err),
			})
			return
		}

		fileURL := fmt.Sprintf("%s/uploads/%s", publicBaseURL, filename)
		log.Printf("✅ Image uploaded: %s -> %s", file.Filename, fileURL)

		c.JSON(http.StatusOK, gin.H{
			"file_url": fileURL,
			"message":  "File uploaded successfully",
		})
	}
}
