package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/handlers"
	"github.com/lucassmelendez/ct-backend/internal/middleware"
	"github.com/lucassmelendez/ct-backend/internal/models"
)

func registerVeterinaryRoutes(api *gin.RouterGroup, deps Dependencies) error {
	vetHandler, err := handlers.NewVeterinaryHandler(deps.DB)
	if err != nil {
		return err
	}
	medHandler, err := handlers.NewMedicationHandler(deps.DB)
	if err != nil {
		return err
	}

	// Creating or editing treatments is restricted to veterinarians and admins.
	vetOnly := middleware.RequireRole(models.RoleAdmin, models.RoleVeterinarian)
	invalidate := middleware.InvalidateCache(deps.Cache, "ganado")

	records := api.Group("/informacion-veterinaria")
	{
		records.GET("", vetHandler.List)
		records.GET("/:id", vetHandler.Get)
		records.POST("", vetOnly, invalidate, vetHandler.Create)
		records.PUT("/:id", vetOnly, invalidate, vetHandler.Update)
		records.DELETE("/:id", vetOnly, invalidate, vetHandler.Delete)
	}

	medications := api.Group("/medicamentos")
	{
		medications.GET("", medHandler.List)
		medications.GET("/:id", medHandler.Get)
		medications.POST("", vetOnly, medHandler.Create)
		medications.PUT("/:id", vetOnly, medHandler.Update)
		medications.DELETE("/:id", vetOnly, medHandler.Delete)
	}
	return nil
}
