package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
	"github.com/lucassmelendez/ct-backend/internal/models"
)

func registerUserRoutes(api *gin.RouterGroup, deps Dependencies) error {
	handler, err := handlers.NewUserHandler(deps.DB, deps.JWT)
	if err != nil {
		return err
	}

	invalidate := middleware.InvalidateCache(deps.Cache, "usuario")

	users := api.Group("/usuarios")
	{
		users.GET("",
			middleware.CachePage(deps.Cache, "usuario", middleware.UserCacheTTL),
			handler.List)
		users.GET("/:id",
			middleware.CachePage(deps.Cache, "usuario", middleware.UserCacheTTL),
			handler.Get)
		users.PUT("/:id", invalidate, handler.Update)
		users.PUT("/:id/preferencias", invalidate, handler.UpdatePreferences)
		users.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), invalidate, handler.Delete)
	}
	return nil
}
