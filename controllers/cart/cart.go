package cartControllers

import (
	"net/http"

	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type MergeInput struct {
	Lines []store.CartLineInput `json:"lines"`
}

func currentUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userIDVal.(string), true
}

// POST /cart/add
// Increments the line by the requested quantity, clamped to live stock, and
// reports the true stored state back.
func AddCartItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		state, err := carts.Add(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "quantity": state.Quantity, "stock": state.Stock})
	}
}

// POST /cart/set
// Replaces the line quantity outright; zero or negative requests delete the line.
func SetCartItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		state, err := carts.SetQuantity(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "quantity": state.Quantity, "stock": state.Stock})
	}
}

// DELETE /cart/remove/:product_id
func RemoveCartItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		productID := c.Param("product_id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		if err := carts.Remove(c.Request.Context(), userID, productID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// POST /cart/merge
// Folds a pre-authentication client cart into the durable cart.
func MergeCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input MergeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := carts.Merge(c.Request.Context(), userID, input.Lines); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// DELETE /cart
func ClearCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		if err := carts.Clear(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /cart
func GetCart(carts store.CartStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		items, err := carts.Items(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		priced, err := products.PublishedByIDs(c.Request.Context(), ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var subtotal int64
		lines := make([]gin.H, 0, len(items))
		for _, item := range items {
			lines = append(lines, gin.H{"product_id": item.ProductID, "quantity": item.Quantity})
			if product, ok := priced[item.ProductID]; ok {
				subtotal += product.PriceCents * int64(item.Quantity)
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "lines": lines, "subtotal": subtotal})
	}
}

// GET /cart/preview
// Cart lines joined with live titles, prices and the first product image.
func PreviewCart(carts store.CartStore, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		items, err := carts.Items(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		previews := make([]gin.H, 0, len(items))
		var subtotal int64
		for _, item := range items {
			product, err := products.FindPublished(c.Request.Context(), item.ProductID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
			if product == nil {
				continue
			}
			var image string
			if len(product.Images) > 0 {
				image = product.Images[0].URL
			}
			subtotal += product.PriceCents * int64(item.Quantity)
			previews = append(previews, gin.H{
				"productId":   item.ProductID,
				"title":       product.Title,
				"price_cents": product.PriceCents,
				"quantity":    item.Quantity,
				"image":       image,
			})
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "items": previews, "subtotal": subtotal})
	}
}
