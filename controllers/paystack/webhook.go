package paystackControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ambrose2002/the-gem-shop/mailer"
	"github.com/Ambrose2002/the-gem-shop/middleware"
	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Verifier re-checks a transaction with the payment provider by reference.
type Verifier interface {
	Verify(ctx context.Context, reference string) (*VerifiedTransaction, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

type WebhookDeps struct {
	Orders          store.OrderStore
	Products        store.ProductStore
	Carts           store.CartStore
	Verifier        Verifier
	Mailer          Mailer
	Logger          *zap.Logger
	StoreName       string
	StoreOwnerEmail string
	FromEmail       string
	EmailTimeout    time.Duration
	Broadcast       func(models.Order)
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Customer  struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// WebhookHandler reconciles a payment notification. The signature middleware
// has already authenticated the delivery; from here on, every internal
// failure is logged and acknowledged with 200 so the provider stops retrying.
// Redelivery is safe: the pending-status guard makes processing idempotent.
func WebhookHandler(deps WebhookDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := rawBody(c)

		var evt webhookEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			deps.Logger.Error("invalid webhook payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"ok": false})
			return
		}

		orderID := evt.Data.Reference
		if orderID == "" {
			deps.Logger.Warn("webhook payload missing reference", zap.String("event", evt.Event))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		ctx := c.Request.Context()

		// Never trust the webhook body's stated status; ask the provider directly.
		verified, err := deps.Verifier.Verify(ctx, orderID)
		if err != nil {
			deps.Logger.Warn("transaction verification failed", zap.String("reference", orderID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if verified.Status != "success" {
			deps.Logger.Warn("verification says transaction not successful",
				zap.String("reference", orderID), zap.String("status", verified.Status))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		order, err := deps.Orders.FindByID(ctx, orderID)
		if err != nil {
			deps.Logger.Error("failed to load order", zap.String("reference", orderID), zap.Error(err))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		if order == nil {
			deps.Logger.Warn("webhook for unknown order", zap.String("reference", orderID))
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}

		// Claim the pending -> paid transition before any side effect, so a
		// concurrent delivery that loses the claim applies nothing.
		firstDelivery := order.Status == models.OrderStatusPending
		if firstDelivery {
			claimed, err := deps.Orders.MarkPaid(ctx, order.ID)
			if err != nil {
				deps.Logger.Error("failed to mark order paid", zap.String("order_id", order.ID), zap.Error(err))
				c.JSON(http.StatusOK, gin.H{"ok": true})
				return
			}
			firstDelivery = claimed
		}

		if firstDelivery {
			for _, item := range order.Items {
				if item.ProductID == "" || item.Quantity <= 0 {
					continue
				}
				if err := deps.Products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					deps.Logger.Warn("stock decrement failed",
						zap.String("order_id", order.ID),
						zap.String("product_id", item.ProductID),
						zap.Int("quantity", item.Quantity),
						zap.Error(err))
				}
			}
			order.Status = models.OrderStatusPaid

			if deps.Broadcast != nil {
				deps.Broadcast(*order)
			}
		}

		// Best effort from here; the payment is already durably recorded.
		if err := deps.Carts.Clear(ctx, order.UserID); err != nil {
			deps.Logger.Warn("failed to clear cart after payment", zap.String("user_id", order.UserID), zap.Error(err))
		}

		if firstDelivery && deps.Mailer != nil {
			deps.notifyPaidOrder(order, evt.Data.Customer.Email)
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func rawBody(c *gin.Context) []byte {
	if v, ok := c.Get(middleware.RawBodyKey); ok {
		if raw, ok := v.([]byte); ok {
			return raw
		}
	}
	raw, _ := c.GetRawData()
	return raw
}

func (deps WebhookDeps) notifyPaidOrder(order *models.Order, customerEmail string) {
	ctx, cancel := context.WithTimeout(context.Background(), deps.EmailTimeout)
	defer cancel()

	var textLines, htmlLines []string
	for _, item := range order.Items {
		textLines = append(textLines, fmt.Sprintf("- %s x %d - %s", item.Title, item.Quantity, FormatCents(item.LineTotalCents)))
		htmlLines = append(htmlLines, fmt.Sprintf("<li>%s × %d — <strong>%s</strong></li>", item.Title, item.Quantity, FormatCents(item.LineTotalCents)))
	}
	total := FormatCents(order.AmountCents)
	deliveryNote := "Before delivery"
	if order.DeliveryPayment == models.DeliveryPaymentAfter {
		deliveryNote = "After delivery"
	}

	msg := mailer.Message{
		From:    fmt.Sprintf("%s <%s>", deps.StoreName, deps.FromEmail),
		To:      []string{deps.StoreOwnerEmail},
		Subject: fmt.Sprintf("Paid order %s — %s", order.ID, total),
		ReplyTo: customerEmail,
		Text: fmt.Sprintf(
			"A payment was confirmed via Paystack.\n\nOrder ID: %s\nTotal: %s\n\nItems:\n%s\n\nCustomer contact:\nPhone: %s\nCity: %s\nAddress: %s\n\nDelivery payment: %s\n\nPlaced at: %s\n",
			order.ID, total, strings.Join(textLines, "\n"),
			order.Phone, order.City, order.Address,
			deliveryNote, order.CreatedAt.Format(time.RFC3339)),
		HTML: fmt.Sprintf(
			`<h2>New paid order</h2><p><strong>Order ID:</strong> %s</p><p><strong>Total:</strong> %s</p><h3>Items</h3><ul>%s</ul><h3>Customer contact</h3><p>Phone: %s<br/>City: %s<br/>Address: %s<br/>Delivery payment: %s</p>`,
			order.ID, total, strings.Join(htmlLines, ""),
			order.Phone, order.City, order.Address, deliveryNote),
	}

	if err := deps.Mailer.Send(ctx, msg); err != nil {
		deps.Logger.Warn("paid-order email failed", zap.String("order_id", order.ID), zap.Error(err))
	}
}

// FormatCents renders minor units for display without going through floats.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sGH₵%d.%02d", sign, cents/100, cents%100)
}
