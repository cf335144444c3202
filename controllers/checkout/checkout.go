package checkoutControllers

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Ghana numbers only: +233 followed by 9 digits, or a local 0-prefixed 10-digit number.
var ghanaPhone = regexp.MustCompile(`^(\+233\d{9}|0\d{9})$`)

// Initializer starts a provider transaction and returns the redirect URL.
type Initializer interface {
	Initialize(ctx context.Context, email string, amountCents int64, currency, reference, callbackURL string, metadata map[string]interface{}) (string, error)
}

type Deps struct {
	Carts    store.CartStore
	Products store.ProductStore
	Orders   store.OrderStore
	Payments Initializer
	Logger   *zap.Logger
	SiteURL  string
	Currency string
}

// PackageSelection attaches an add-on package to one cart line.
type PackageSelection struct {
	LineProductID string `json:"line_product_id"`
	PackageID     string `json:"package_id"`
	Quantity      int    `json:"quantity"`
}

type CheckoutRequest struct {
	Phone           string             `json:"phone"`
	City            string             `json:"city"`
	Address         string             `json:"address"`
	DeliveryPayment string             `json:"deliveryPayment"`
	Packages        []PackageSelection `json:"packages"`
}

// validateContact checks the contact fields and resolves the delivery-payment
// enum, defaulting to "before". Field-level problems come back keyed by field.
func validateContact(req CheckoutRequest) (models.DeliveryPayment, map[string]string) {
	problems := map[string]string{}

	if !ghanaPhone.MatchString(strings.TrimSpace(req.Phone)) {
		problems["phone"] = "must be a Ghanaian phone number (+233XXXXXXXXX or 0XXXXXXXXX)"
	}
	if len(strings.TrimSpace(req.City)) < 2 {
		problems["city"] = "city is required"
	}
	if len(strings.TrimSpace(req.Address)) < 3 {
		problems["address"] = "address is required"
	}

	delivery := models.DeliveryPaymentBefore
	switch req.DeliveryPayment {
	case "", string(models.DeliveryPaymentBefore):
	case string(models.DeliveryPaymentAfter):
		delivery = models.DeliveryPaymentAfter
	default:
		problems["deliveryPayment"] = `must be "before" or "after"`
	}
	return delivery, problems
}

// validatePackages prices the add-on selections against the server-side
// allow-list. Any unavailable package, over-stock total, or selection
// exceeding its parent line's quantity rejects the whole checkout.
func validatePackages(selections []PackageSelection, lineQty map[string]int, allowed []models.Product) ([]models.OrderItem, map[string]string) {
	problems := map[string]string{}
	allowedByID := make(map[string]models.Product, len(allowed))
	for _, p := range allowed {
		allowedByID[p.ID] = p
	}

	requestedByPackage := make(map[string]int)
	var items []models.OrderItem

	for _, sel := range selections {
		if sel.Quantity <= 0 {
			problems[sel.PackageID] = "package quantity must be positive"
			continue
		}
		parentQty, ok := lineQty[sel.LineProductID]
		if !ok {
			problems[sel.PackageID] = "package attached to a product not in the cart"
			continue
		}
		if sel.Quantity > parentQty {
			problems[sel.PackageID] = "more packages than items in the cart line"
			continue
		}
		pkg, ok := allowedByID[sel.PackageID]
		if !ok {
			problems[sel.PackageID] = "package is not available"
			continue
		}
		requestedByPackage[sel.PackageID] += sel.Quantity
		if requestedByPackage[sel.PackageID] > pkg.Stock {
			problems[sel.PackageID] = "package is out of stock"
			continue
		}

		qty := int64(sel.Quantity)
		items = append(items, models.OrderItem{
			ProductID:      pkg.ID,
			Title:          pkg.Title,
			UnitPriceCents: pkg.PriceCents,
			Quantity:       sel.Quantity,
			LineTotalCents: pkg.PriceCents * qty,
		})
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return items, nil
}

// POST /checkout
func Checkout(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		delivery, problems := validateContact(req)
		if len(problems) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact details", "fields": problems})
			return
		}

		ctx := c.Request.Context()

		cartItems, err := deps.Carts.Items(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}
		if len(cartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart empty"})
			return
		}

		productIDs := make([]string, 0, len(cartItems))
		for _, item := range cartItems {
			productIDs = append(productIDs, item.ProductID)
		}
		products, err := deps.Products.PublishedByIDs(ctx, productIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
			return
		}

		// Snapshot titles and prices now; later product edits must not touch
		// this order. Lines whose product vanished since it was carted are
		// skipped rather than priced at zero.
		var orderItems []models.OrderItem
		var total int64
		lineQty := make(map[string]int, len(cartItems))
		for _, item := range cartItems {
			product, ok := products[item.ProductID]
			if !ok || item.Quantity <= 0 {
				continue
			}
			lineTotal := product.PriceCents * int64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:      product.ID,
				Title:          product.Title,
				UnitPriceCents: product.PriceCents,
				Quantity:       item.Quantity,
				LineTotalCents: lineTotal,
			})
			total += lineTotal
			lineQty[item.ProductID] = item.Quantity
		}

		if len(req.Packages) > 0 {
			allowed, err := deps.Products.Packages(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load packages"})
				return
			}
			pkgItems, pkgProblems := validatePackages(req.Packages, lineQty, allowed)
			if len(pkgProblems) > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package selection", "fields": pkgProblems})
				return
			}
			for _, item := range pkgItems {
				total += item.LineTotalCents
			}
			orderItems = append(orderItems, pkgItems...)
		}

		if total <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart empty"})
			return
		}

		order := &models.Order{
			UserID:          userID,
			AmountCents:     total,
			Currency:        deps.Currency,
			Status:          models.OrderStatusPending,
			Provider:        "paystack",
			Phone:           strings.TrimSpace(req.Phone),
			City:            strings.TrimSpace(req.City),
			Address:         strings.TrimSpace(req.Address),
			DeliveryPayment: delivery,
		}
		if err := deps.Orders.CreateWithItems(ctx, order, orderItems); err != nil {
			deps.Logger.Error("failed to create order", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		email := c.GetString("email")
		if email == "" {
			email = "customer@example.com"
		}

		url, err := deps.Payments.Initialize(ctx, email, total, deps.Currency, order.ID,
			deps.SiteURL+"/payment/callback",
			map[string]interface{}{
				"order_id":        order.ID,
				"user_id":         userID,
				"phone":           order.Phone,
				"city":            order.City,
				"address":         order.Address,
				"deliveryPayment": string(delivery),
			})
		if err != nil {
			// The order stays pending; the webhook or a retry settles it.
			deps.Logger.Error("payment initialization failed", zap.String("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment initialization failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
