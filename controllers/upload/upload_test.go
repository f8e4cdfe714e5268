package uploadController

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, filename string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleImageUploadSavesFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	r := gin.New()
	r.POST("/uploads", HandleImageUpload(dir, "http://localhost:8080"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "tomatoes.jpg"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "http://localhost:8080/uploads/")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, ".jpg", filepath.Ext(entries[0].Name()))
}

func TestHandleImageUploadRejectsNonImage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	r := gin.New()
	r.POST("/uploads", HandleImageUpload(dir, "http://localhost:8080"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "malware.exe"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestHandleImageUploadRequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/uploads", HandleImageUpload(t.TempDir(), "http://localhost:8080"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/uploads", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
