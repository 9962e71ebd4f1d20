package routes

import (
	"time"

	"pestcontrol/handlers"
	"pestcontrol/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterCatalogTypeRoutes registers service-type and area-type endpoints.
func RegisterCatalogTypeRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := middleware.AdminAuthMiddleware(hb.Verifier)

	serviceTypes := api.Group("/service-types")
	{
		serviceTypes.GET("", hb.ListServiceTypesHandler)
		serviceTypes.POST("", admin, hb.CreateServiceTypeHandler)
		serviceTypes.PUT("/:id", admin, hb.UpdateServiceTypeHandler)
		serviceTypes.DELETE("/:id", admin, hb.DeleteServiceTypeHandler)
	}

	areaTypes := api.Group("/area-types")
	{
		areaTypes.GET("", hb.ListAreaTypesHandler)
		areaTypes.POST("", admin, hb.CreateAreaTypeHandler)
		areaTypes.PUT("/:id", admin, hb.UpdateAreaTypeHandler)
		areaTypes.DELETE("/:id", admin, hb.DeleteAreaTypeHandler)
	}
}

// RegisterPublicRoutes registers the unauthenticated site endpoints.
func RegisterPublicRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/services", hb.ListServicesHandler)
	api.GET("/services/:slug", hb.GetServiceBySlugHandler)
	api.POST("/contact", hb.ContactHandler)
	api.GET("/seo/:page", hb.GetSEOByPageHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")

	adminGroup.POST("/login", hb.AdminLoginHandler)

	// No admin auth on these.
	adminGroup.POST("/send-review-invitation", hb.SendReviewInvitationHandler)
	adminGroup.GET("/seo", hb.ListSEOHandler)
	adminGroup.PUT("/seo", hb.UpdateSEOHandler)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminAuthMiddleware(hb.Verifier))
	{
		protected.GET("/services", hb.AdminListServicesHandler)
		protected.POST("/services", hb.CreateServiceHandler)
		protected.PUT("/services/:id", hb.UpdateServiceHandler)
		protected.DELETE("/services/:id", hb.DeleteServiceHandler)
		protected.GET("/leads", hb.ListLeadsHandler)
		if hb.UploadFileHandler != nil {
			protected.POST("/uploads/:bucket", hb.UploadFileHandler)
			protected.DELETE("/uploads", hb.DeleteFileHandler)
		}
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	RegisterCatalogTypeRoutes(api, hb)
	RegisterPublicRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
