package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
)

func registerFarmRoutes(api *gin.RouterGroup, deps Dependencies) error {
	handler, err := handlers.NewFarmHandler(deps.DB)
	if err != nil {
		return err
	}

	cached := middleware.CachePage(deps.Cache, "finca", middleware.FarmCacheTTL)
	// Farm changes surface in herd and user listings as well.
	invalidate := middleware.InvalidateCache(deps.Cache, "finca", "ganado", "usuario")

	farms := api.Group("/fincas")
	{
		farms.GET("", cached, handler.List)
		farms.GET("/:id", cached, handler.Get)
		farms.POST("", invalidate, handler.Create)
		farms.PUT("/:id", invalidate, handler.Update)
		farms.DELETE("/:id", invalidate, handler.Delete)

		farms.GET("/:id/usuarios", handler.Members)
		farms.POST("/:id/usuarios", invalidate, handler.AddMember)
		farms.DELETE("/:id/usuarios/:userID", invalidate, handler.RemoveMember)
	}
	return nil
}
