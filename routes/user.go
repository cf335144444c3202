package routes

import (
	cartControllers "github.com/Ambrose2002/the-gem-shop/controllers/cart"
	checkoutControllers "github.com/Ambrose2002/the-gem-shop/controllers/checkout"
	orderControllers "github.com/Ambrose2002/the-gem-shop/controllers/order"
	productControllers "github.com/Ambrose2002/the-gem-shop/controllers/product"
	userControllers "github.com/Ambrose2002/the-gem-shop/controllers/user"
	"github.com/Ambrose2002/the-gem-shop/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the storefront endpoints. Catalog browsing is
// public; everything touching a user's cart or orders requires a JWT.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	// Public catalog
	r.GET("/products", productControllers.GetProducts(deps.DB))          // GET /products
	r.GET("/products/:id", productControllers.GetProductByID(deps.DB))   // GET /products/:id
	r.GET("/categories", productControllers.GetAllCategories(deps.DB))   // GET /categories
	r.GET("/packages", checkoutControllers.GetPackages(deps.Products))   // GET /packages

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(deps.Cfg.JWTSecret))
	{
		userGroup.GET("/", userControllers.GetUser(deps.DB))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(deps.DB)) // PUT /user/

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetCart(deps.Carts, deps.Products))         // GET /user/cart
			cartGroup.GET("/preview", cartControllers.PreviewCart(deps.Carts, deps.Products)) // GET /user/cart/preview
			cartGroup.POST("/add", cartControllers.AddCartItem(deps.Carts))                // POST /user/cart/add
			cartGroup.POST("/set", cartControllers.SetCartItem(deps.Carts))                // POST /user/cart/set
			cartGroup.POST("/merge", cartControllers.MergeCart(deps.Carts))                // POST /user/cart/merge
			cartGroup.DELETE("/:product_id", cartControllers.RemoveCartItem(deps.Carts))   // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearCart(deps.Carts))                   // DELETE /user/cart
		}

		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(deps.DB)) // GET /user/orders

		userGroup.POST("/checkout", checkoutControllers.Checkout(checkoutControllers.Deps{
			Carts:    deps.Carts,
			Products: deps.Products,
			Orders:   deps.Orders,
			Payments: deps.Payments,
			Logger:   deps.Logger,
			SiteURL:  deps.Cfg.SiteURL,
			Currency: deps.Cfg.Currency,
		})) // POST /user/checkout

		userGroup.POST("/order-request", orderControllers.OrderRequestHandler(orderControllers.RequestDeps{
			Carts:           deps.Carts,
			Products:        deps.Products,
			Mailer:          deps.Mailer,
			Logger:          deps.Logger,
			StoreName:       deps.Cfg.StoreName,
			StoreOwnerEmail: deps.Cfg.StoreOwnerEmail,
			FromEmail:       deps.Cfg.FromEmail,
			EmailTimeout:    deps.Cfg.EmailTimeout,
		})) // POST /user/order-request
	}
}
