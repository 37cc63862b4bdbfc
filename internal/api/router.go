package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/app"
	iauth "github.com/lucassmelendez/ct-backend/internal/auth"
	"github.com/lucassmelendez/ct-backend/internal/cache"
	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
	"github.com/lucassmelendez/ct-backend/internal/models"
	"github.com/lucassmelendez/ct-backend/internal/services"
)

// Dependencies bundles the shared services the router wires into handlers.
type Dependencies struct {
	DB       *gorm.DB
	JWT      *iauth.JWTService
	Cache    *cache.Manager
	Bindings *services.BindingService
	Config   *app.Config
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if deps.JWT == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if deps.Bindings == nil {
		return nil, fmt.Errorf("binding service must be provided")
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewManager(nil, nil)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	maxRequests, window := 100, middleware.DefaultRateWindow
	if deps.Config != nil && deps.Config.Server.RateLimit.MaxRequests > 0 {
		maxRequests = deps.Config.Server.RateLimit.MaxRequests
		window = deps.Config.Server.RateLimit.Window
	}
	r.Use(middleware.RateLimit(maxRequests, window))

	// Health endpoint (public)
	r.GET("/health", handlers.Health(deps.DB))

	authHandler, err := handlers.NewAuthHandler(deps.DB, deps.JWT)
	if err != nil {
		return nil, err
	}

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	requireAuth := middleware.Auth(deps.JWT)

	api := r.Group("/api")
	api.Use(requireAuth)

	// Authenticated auth routes
	api.GET("/auth/me", authHandler.Me)

	if err := registerUserRoutes(api, deps); err != nil {
		return nil, err
	}
	if err := registerFarmRoutes(api, deps); err != nil {
		return nil, err
	}
	if err := registerCattleRoutes(api, deps); err != nil {
		return nil, err
	}
	if err := registerVeterinaryRoutes(api, deps); err != nil {
		return nil, err
	}
	if err := registerSaleRoutes(api, deps); err != nil {
		return nil, err
	}
	if err := registerLookupRoutes(api, deps); err != nil {
		return nil, err
	}
	registerBindingRoutes(api, deps)
	registerCacheRoutes(api, deps)

	// Metrics endpoint
	if deps.Config == nil || deps.Config.Monitoring.Prometheus.Enabled {
		endpoint := "/metrics"
		if deps.Config != nil && deps.Config.Monitoring.Prometheus.Endpoint != "" {
			endpoint = deps.Config.Monitoring.Prometheus.Endpoint
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

func registerBindingRoutes(api *gin.RouterGroup, deps Dependencies) {
	handler := handlers.NewBindingHandler(deps.Bindings)

	vincular := api.Group("/vincular")
	{
		vincular.POST("/generar", handler.Generate)
		vincular.POST("/verificar",
			middleware.InvalidateCache(deps.Cache, "finca", "usuario"),
			handler.Redeem)
		vincular.GET("/finca/:idFinca", handler.ListActive)
		vincular.DELETE("/codigo/:codigo/finca/:idFinca", handler.Revoke)
	}
}

func registerCacheRoutes(api *gin.RouterGroup, deps Dependencies) {
	handler := handlers.NewCacheHandler(deps.Cache)

	cacheGroup := api.Group("/cache", middleware.RequireRole(models.RoleAdmin))
	{
		cacheGroup.GET("/stats", handler.Stats)
		cacheGroup.POST("/clear", handler.Clear)
	}
}
