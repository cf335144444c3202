package productcontroller

import (
	"errors"
	"net/http"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists the storefront catalog: published products only, drafts
// and soft-deleted rows excluded. Optional ?category= filters by category id.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
			Preload("Categories").
			Where("products.status = ?", models.ProductStatusPublished)

		if categoryID := c.Query("category"); categoryID != "" {
			query = query.
				Joins("JOIN product_categories pc ON pc.product_id = products.id").
				Where("pc.category_id = ?", categoryID)
		}

		var products []models.Product
		if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID returns a single published product.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		var product models.Product
		err := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
			Preload("Categories").
			Where("id = ? AND status = ?", id, models.ProductStatusPublished).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetAdminProducts lists everything that isn't hard-deleted, drafts included.
func GetAdminProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
			Preload("Categories").
			Order("created_at DESC").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
