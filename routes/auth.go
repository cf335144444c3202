package routes

import (
	"github.com/Ambrose2002/the-gem-shop/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the public "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterUser(deps.DB, deps.Cfg.JWTSecret)) // POST /auth/register
		authGroup.POST("/login", auth.LoginUser(deps.DB, deps.Cfg.JWTSecret))       // POST /auth/login
		authGroup.POST("/guest", auth.GuestToken(deps.Cfg.JWTSecret))               // POST /auth/guest

		authGroup.POST("/admin/register", auth.RegisterAdmin(deps.DB))                   // POST /auth/admin/register
		authGroup.POST("/admin/login", auth.LoginAdmin(deps.DB, deps.Cfg.JWTSecret))     // POST /auth/admin/login
	}
}
