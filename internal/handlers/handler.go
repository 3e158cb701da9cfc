package handlers

import (
	"waterbuddy/internal/logger"
	"waterbuddy/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Browser dashboard is served from another origin.
	router.Use(cors.Default())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live dashboard summary (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerIntakeRoutes(api)
		h.registerProfileRoutes(api)
		h.registerDashboardRoutes(api)
	}
}

func (h *Handler) registerIntakeRoutes(api *gin.RouterGroup) {
	intake := api.Group("/intake")
	{
		intake.GET("/today", h.getTodayIntake)
		intake.GET("/entries", h.getEntries)
		// Body example: {"amount_ml":250}
		intake.POST("/log", h.logWater)
		intake.POST("/reset", h.resetIntake)
		intake.PUT("", h.setIntake)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PATCH("", h.updateProfile)
	}
}

func (h *Handler) registerDashboardRoutes(api *gin.RouterGroup) {
	api.GET("/summary", h.getSummary)
	api.GET("/history", h.getHistory)
	api.GET("/tip", h.getTip)
	api.GET("/convert", h.convertUnits)
}
