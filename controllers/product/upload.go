package productControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stockroomhq/inventory-api/config"
	"github.com/stockroomhq/inventory-api/pkg/response"
)

// UploadProductImages accepts a multipart form with one or more "images"
// files, stores them under the upload dir and returns their public URLs.
func UploadProductImages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			response.Error(c, http.StatusBadRequest, "No images uploaded")
			return
		}

		saveDir := filepath.Join(cfg.UploadDir, "products")
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			response.InternalError(c, err, "Failed to create upload folder")
			return
		}

		var imageURLs []string
		for _, file := range files {
			ext := filepath.Ext(file.Filename)
			filename := uuid.NewString() + strings.ToLower(ext)
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				response.InternalError(c, err, "Failed to save image")
				return
			}
			imageURLs = append(imageURLs, fmt.Sprintf("/uploads/products/%s", filename))
		}

		response.Success(c, http.StatusOK, "Images uploaded successfully", gin.H{
			"imageUrls": imageURLs,
		})
	}
}
