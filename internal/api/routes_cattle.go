package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
)

func registerCattleRoutes(api *gin.RouterGroup, deps Dependencies) error {
	handler, err := handlers.NewCattleHandler(deps.DB)
	if err != nil {
		return err
	}

	cached := middleware.CachePage(deps.Cache, "ganado", middleware.CattleCacheTTL)
	invalidate := middleware.InvalidateCache(deps.Cache, "ganado")

	cattle := api.Group("/ganado")
	{
		cattle.GET("", cached, handler.List)
		cattle.GET("/:id", cached, handler.Get)
		cattle.POST("", invalidate, handler.Create)
		cattle.PUT("/:id", invalidate, handler.Update)
		cattle.PUT("/:id/finca",
			middleware.InvalidateCache(deps.Cache, "ganado", "finca"),
			handler.AssignFarm)
		cattle.DELETE("/:id", invalidate, handler.Delete)
	}
	return nil
}
