package productcontroller

import (
	"errors"
	"net/http"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateProductInput struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	PriceCents        *int64   `json:"price_cents"`
	Stock             *int     `json:"stock"`
	Status            *string  `json:"status"`
	AddCategoryIDs    []string `json:"addCategoryIds"`
	RemoveCategoryIDs []string `json:"removeCategoryIds"`
}

// UpdateProduct patches product fields and syncs category links.
// URL param: /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
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

		var input updateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.PriceCents != nil {
			if *input.PriceCents < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price_cents"})
				return
			}
			updates["price_cents"] = *input.PriceCents
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.Status != nil {
			switch models.ProductStatus(*input.Status) {
			case models.ProductStatusDraft, models.ProductStatusPublished:
				updates["status"] = *input.Status
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}
			if len(input.RemoveCategoryIDs) > 0 {
				var remove []models.Category
				if err := tx.Where("id IN ?", input.RemoveCategoryIDs).Find(&remove).Error; err != nil {
					return err
				}
				if err := tx.Model(&product).Association("Categories").Delete(remove); err != nil {
					return err
				}
			}
			if len(input.AddCategoryIDs) > 0 {
				var add []models.Category
				if err := tx.Where("id IN ?", input.AddCategoryIDs).Find(&add).Error; err != nil {
					return err
				}
				if err := tx.Model(&product).Association("Categories").Append(add); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
