package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
)

func registerLookupRoutes(api *gin.RouterGroup, deps Dependencies) error {
	handler, err := handlers.NewLookupHandler(deps.DB)
	if err != nil {
		return err
	}

	premiumCached := middleware.CachePage(deps.Cache, "premium", middleware.PremiumTypeCacheTTL)

	api.GET("/generos", handler.Genders)
	api.GET("/estados-salud", handler.HealthStatuses)
	api.GET("/producciones", handler.Productions)
	api.GET("/tipos-premium", premiumCached, handler.PremiumTypes)
	api.GET("/roles", handler.Roles)
	return nil
}
