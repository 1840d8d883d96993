package router

import (
	"github.com/gin-gonic/gin"

	"sartor/internal/domain"
	"sartor/internal/handler"
	"sartor/internal/middleware"
	"sartor/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	catalogH *handler.CatalogHandler,
	orderH *handler.OrderHandler,
	imageH *handler.ImageHandler,
	bookingH *handler.BookingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.Me)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Deactivate)

	// Service catalog
	services := protected.Group("/services")
	services.GET("", catalogH.List)
	services.GET("/:id", catalogH.GetByID)
	services.POST("", middleware.RequireRole(domain.RoleAdmin), catalogH.Create)
	services.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), catalogH.Update)
	services.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), catalogH.Deactivate)

	// Orders and their images
	orders := protected.Group("/orders")
	orders.POST("", orderH.Create)
	orders.GET("", orderH.List)
	orders.GET("/:id", orderH.GetByID)
	orders.PATCH("/:id/status", middleware.RequireRole(domain.RoleAdmin), orderH.UpdateStatus)
	orders.POST("/:id/images", imageH.Upload)
	orders.GET("/:id/images", imageH.List)
	orders.DELETE("/:id/images/:imageID", middleware.RequireRole(domain.RoleAdmin), imageH.Delete)

	// Fitting appointments
	bookings := protected.Group("/bookings")
	bookings.POST("", bookingH.Create)
	bookings.GET("", bookingH.List)
	bookings.GET("/:id", bookingH.GetByID)
	bookings.PATCH("/:id/status", bookingH.UpdateStatus)

	return r
}
