package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/middleware"
)

// ----------------------------------------------------------------------------
// Route Registration
// ----------------------------------------------------------------------------

func (a *App) RegisterRoutes() *gin.Engine {
	router := gin.New()

	// Global middleware chain
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Public routes
	router.POST("/signup", a.HandleSignup)
	router.POST("/login", a.HandleLogin)
	router.GET("/products", a.HandleListProducts)

	// Authenticated routes
	router.POST("/profile", middleware.Authenticate(a.tokens), a.HandleSaveProfile)
	router.POST("/cart/bill", middleware.Authenticate(a.tokens), a.HandleBill)

	// Admin routes; the role gate lives here, not in the handlers
	admin := router.Group("/admin")
	admin.Use(middleware.Authenticate(a.tokens), middleware.RequireAdmin())
	{
		admin.GET("/users", a.HandleListUsers)
		admin.PUT("/user/:id", a.HandleUpdateUser)
		admin.DELETE("/user/:id", a.HandleDeleteUser)
		admin.GET("/activities", a.HandleListActivities)
		admin.GET("/activities/export", a.HandleExportActivities)
	}

	// Health check routes (public)
	health := router.Group("/health")
	{
		health.GET("/readiness", a.HandleReadiness)
		health.GET("/liveness", a.HandleLiveness)
	}

	return router
}
