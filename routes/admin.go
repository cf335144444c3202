package routes

import (
	adminController "github.com/Ambrose2002/the-gem-shop/controllers/admin"
	orderControllers "github.com/Ambrose2002/the-gem-shop/controllers/order"
	productControllers "github.com/Ambrose2002/the-gem-shop/controllers/product"
	userControllers "github.com/Ambrose2002/the-gem-shop/controllers/user"
	"github.com/Ambrose2002/the-gem-shop/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the "/admin/*" endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(deps.Cfg.AdminAPIKey))
	{
		// Products
		adminGroup.GET("/products", productControllers.GetAdminProducts(deps.DB))                     // GET /admin/products
		adminGroup.POST("/products", productControllers.CreateProduct(deps.DB, deps.Cfg.UploadsDir))  // POST /admin/products
		adminGroup.PUT("/products/:id", productControllers.UpdateProduct(deps.DB))                    // PUT /admin/products/:id
		adminGroup.DELETE("/products/:id", productControllers.DeleteProduct(deps.DB))                 // DELETE /admin/products/:id

		// Product images
		adminGroup.POST("/products/:id/images", productControllers.UploadProductImages(deps.DB, deps.Cfg.UploadsDir))            // POST /admin/products/:id/images
		adminGroup.DELETE("/products/:id/images/:imageID", productControllers.DeleteProductImage(deps.DB, deps.Cfg.UploadsDir))  // DELETE /admin/products/:id/images/:imageID

		// Excel
		adminGroup.GET("/export-excel", productControllers.ExportProductsToExcel(deps.DB))   // GET /admin/export-excel
		adminGroup.POST("/import-excel", productControllers.ImportProductsFromExcel(deps.DB)) // POST /admin/import-excel

		// Categories
		adminGroup.POST("/categories", productControllers.CreateCategory(deps.DB))       // POST /admin/categories
		adminGroup.PUT("/categories/:id", productControllers.UpdateCategory(deps.DB))    // PUT /admin/categories/:id
		adminGroup.DELETE("/categories/:id", productControllers.DeleteCategory(deps.DB)) // DELETE /admin/categories/:id

		// Orders
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(deps.DB))         // GET /admin/orders
		adminGroup.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(deps.DB)) // GET /admin/orders/:orderID

		// Users and admins
		adminGroup.GET("/users", userControllers.GetAllUsers(deps.DB))              // GET /admin/users
		adminGroup.GET("/admins", adminController.GetAllAdmins(deps.DB))            // GET /admin/admins
		adminGroup.GET("/admins/pending", adminController.ListPendingAdmins(deps.DB)) // GET /admin/admins/pending
		adminGroup.POST("/admins/approve", adminController.ApproveAdmin(deps.DB))   // POST /admin/admins/approve
		adminGroup.POST("/admins/reject", adminController.RejectAdmin(deps.DB))     // POST /admin/admins/reject

		// Live order feed for the dashboard
		adminGroup.GET("/ws/orders", orderControllers.OrderWebSocketHandler) // GET /admin/ws/orders
	}
}
