package productcontroller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadProductImages appends uploads to an existing product's gallery.
// POST /admin/products/:id/images, multipart field "files".
func UploadProductImages(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil || len(form.File["files"]) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
			return
		}

		var nextSort int64
		db.Model(&models.ProductImage{}).Where("product_id = ?", id).Count(&nextSort)

		var created []models.ProductImage
		for i, file := range form.File["files"] {
			url, err := saveProductImage(c, uploadsDir, product.ID, file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			image := models.ProductImage{ProductID: product.ID, URL: url, Sort: int(nextSort) + i}
			if err := db.Create(&image).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
				return
			}
			created = append(created, image)
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "images": created})
	}
}

// DeleteProductImage removes one gallery image row and its file on disk.
// DELETE /admin/products/:id/images/:imageID
func DeleteProductImage(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")
		imageID := c.Param("imageID")

		var image models.ProductImage
		if err := db.Where("id = ? AND product_id = ?", imageID, productID).First(&image).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch image"})
			return
		}

		if err := db.Delete(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
			return
		}

		// The URL maps back under uploadsDir; removal failure is non-fatal.
		if rel, ok := strings.CutPrefix(image.URL, "/uploads/"); ok {
			_ = os.Remove(filepath.Join(uploadsDir, filepath.FromSlash(rel)))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
