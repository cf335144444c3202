package routes

import (
	orderControllers "github.com/Ambrose2002/the-gem-shop/controllers/order"
	paystackControllers "github.com/Ambrose2002/the-gem-shop/controllers/paystack"
	"github.com/Ambrose2002/the-gem-shop/middleware"
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes registers the Paystack webhook. The signature check
// runs before the handler ever sees the payload.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	r.POST("/webhooks/payment",
		middleware.PaystackWebhookAuth(deps.Cfg.PaystackSecretKey),
		paystackControllers.WebhookHandler(paystackControllers.WebhookDeps{
			Orders:          deps.Orders,
			Products:        deps.Products,
			Carts:           deps.Carts,
			Verifier:        deps.Payments,
			Mailer:          deps.Mailer,
			Logger:          deps.Logger,
			StoreName:       deps.Cfg.StoreName,
			StoreOwnerEmail: deps.Cfg.StoreOwnerEmail,
			FromEmail:       deps.Cfg.FromEmail,
			EmailTimeout:    deps.Cfg.EmailTimeout,
			Broadcast:       orderControllers.BroadcastOrder,
		})) // POST /webhooks/payment
}
