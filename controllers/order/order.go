package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	paystackControllers "github.com/Ambrose2002/the-gem-shop/controllers/paystack"
	"github.com/Ambrose2002/the-gem-shop/mailer"
	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userIDVal.(string)).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID (admin)
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Where("id = ?", id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type RequestDeps struct {
	Carts           store.CartStore
	Products        store.ProductStore
	Mailer          Mailer
	Logger          *zap.Logger
	StoreName       string
	StoreOwnerEmail string
	FromEmail       string
	EmailTimeout    time.Duration
}

type orderRequestInput struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// POST /order-request
// Mails the cart contents to the store owner without collecting payment, then
// clears the cart. Payment is coordinated offline.
func OrderRequestHandler(deps RequestDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		email := c.GetString("email")

		var input orderRequestInput
		_ = c.ShouldBindJSON(&input)
		if input.Phone == "" || input.City == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Phone and city are required."})
			return
		}

		ctx := c.Request.Context()
		items, err := deps.Carts.Items(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load cart"})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Cart is empty"})
			return
		}

		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		products, err := deps.Products.PublishedByIDs(ctx, ids)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load cart"})
			return
		}

		var subtotal int64
		var rows []string
		for _, item := range items {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			line := product.PriceCents * int64(item.Quantity)
			subtotal += line
			rows = append(rows, fmt.Sprintf("<li>%s × %d — <strong>%s</strong></li>",
				product.Title, item.Quantity, paystackControllers.FormatCents(line)))
		}

		html := fmt.Sprintf(
			`<h2>New Order Request</h2><p>From: &lt;%s&gt;</p><p>Phone: %s &nbsp;•&nbsp; City: %s</p><ul>%s</ul><p><strong>Subtotal: %s</strong></p><p>(No payment was collected. Please coordinate offline.)</p>`,
			email, input.Phone, input.City, strings.Join(rows, ""), paystackControllers.FormatCents(subtotal))

		sendCtx, cancel := context.WithTimeout(ctx, deps.EmailTimeout)
		defer cancel()
		err = deps.Mailer.Send(sendCtx, mailer.Message{
			From:    fmt.Sprintf("%s <%s>", deps.StoreName, deps.FromEmail),
			To:      []string{deps.StoreOwnerEmail},
			Subject: fmt.Sprintf("Order request from %s", email),
			HTML:    html,
			ReplyTo: email,
		})
		if err != nil {
			deps.Logger.Error("order-request email failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Email failed"})
			return
		}

		if err := deps.Carts.Clear(ctx, userID); err != nil {
			deps.Logger.Warn("failed to clear cart after order request", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true, "cleared": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "cleared": true})
	}
}
