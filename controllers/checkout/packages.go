package checkoutControllers

import (
	"net/http"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
)

type packagePayload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

// GET /packages returns the live add-on allow-list shown at checkout.
func GetPackages(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		packages, err := products.Packages(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load packages"})
			return
		}

		payload := make([]packagePayload, 0, len(packages))
		for _, pkg := range packages {
			payload = append(payload, packagePayload{
				ID:          pkg.ID,
				Title:       pkg.Title,
				Description: pkg.Description,
				PriceCents:  pkg.PriceCents,
				Stock:       pkg.Stock,
				Images:      imageURLs(pkg.Images),
			})
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "packages": payload})
	}
}

func imageURLs(images []models.ProductImage) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls
}
