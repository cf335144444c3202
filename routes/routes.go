package routes

import (
	"github.com/Ambrose2002/the-gem-shop/config"
	paystackControllers "github.com/Ambrose2002/the-gem-shop/controllers/paystack"
	"github.com/Ambrose2002/the-gem-shop/mailer"
	"github.com/Ambrose2002/the-gem-shop/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps holds everything the route groups need.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Logger   *zap.Logger
	Carts    store.CartStore
	Products store.ProductStore
	Orders   store.OrderStore
	Payments *paystackControllers.Client
	Mailer   *mailer.Client
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Storefront routes (JWT-protected where they touch a user's data)
	SetupUserRoutes(r, deps)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, deps)

	// Paystack webhook (signature-verified)
	SetupPaymentRoutes(r, deps)
}
