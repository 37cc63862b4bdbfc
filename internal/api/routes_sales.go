package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
)

func registerSaleRoutes(api *gin.RouterGroup, deps Dependencies) error {
	handler, err := handlers.NewSaleHandler(deps.DB)
	if err != nil {
		return err
	}

	// Selling detaches cattle from their farm, so herd caches go stale too.
	invalidate := middleware.InvalidateCache(deps.Cache, "venta", "ganado")

	sales := api.Group("/ventas")
	{
		sales.GET("", handler.List)
		sales.GET("/stats", handler.Stats)
		sales.GET("/comprador/:comprador", handler.ListByBuyer)
		sales.GET("/:id", handler.Get)
		sales.POST("", invalidate, handler.Create)
		sales.DELETE("/:id", invalidate, handler.Delete)
	}
	return nil
}
