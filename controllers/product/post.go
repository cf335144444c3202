package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProduct creates a new product with categories and image uploads.
// Multipart form: title, description, price_cents, stock, status,
// category_ids (comma-separated), files (repeated).
func CreateProduct(db *gorm.DB, uploadsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		title := strings.TrimSpace(c.PostForm("title"))
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		priceCents, err := strconv.ParseInt(c.DefaultPostForm("price_cents", "0"), 10, 64)
		if err != nil || priceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_cents"})
			return
		}
		stock, err := strconv.Atoi(c.DefaultPostForm("stock", "0"))
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
			return
		}

		status := models.ProductStatusPublished
		if c.PostForm("status") == string(models.ProductStatusDraft) {
			status = models.ProductStatusDraft
		}

		var categories []models.Category
		if raw := c.PostForm("category_ids"); raw != "" {
			var ids []string
			for _, tok := range strings.Split(raw, ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					ids = append(ids, tok)
				}
			}
			if len(ids) > 0 {
				if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		product := models.Product{
			Title:       title,
			Slug:        ensureUniqueSlug(db, baseSlugFromTitle(title)),
			Description: c.PostForm("description"),
			PriceCents:  priceCents,
			Stock:       stock,
			Status:      status,
			Categories:  categories,
		}

		var files []*multipart.FileHeader
		if form, _ := c.MultipartForm(); form != nil {
			files = form.File["files"]
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for i, file := range files {
				url, err := saveProductImage(c, uploadsDir, product.ID, file)
				if err != nil {
					return err
				}
				image := models.ProductImage{ProductID: product.ID, URL: url, Sort: i}
				if err := tx.Create(&image).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true, "id": product.ID})
	}
}

// saveProductImage writes an upload under uploadsDir/products/<productID>/
// and returns the URL path it is served from.
func saveProductImage(c *gin.Context, uploadsDir, productID string, file *multipart.FileHeader) (string, error) {
	saveDir := filepath.Join(uploadsDir, "products", productID)
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", err
	}
	filename := makeSafeFileName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/products/%s/%s", productID, filename), nil
}

func makeSafeFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(original, filepath.Ext(original))
	base = strings.Trim(slugCleaner.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), base, ext)
}
