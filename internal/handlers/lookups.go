package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// LookupHandler serves the seeded catalogue tables.
type LookupHandler struct {
	lookups *services.LookupService
}

func NewLookupHandler(db *gorm.DB) (*LookupHandler, error) {
	lookups, err := services.NewLookupService(db)
	if err != nil {
		return nil, err
	}
	return &LookupHandler{lookups: lookups}, nil
}

// GET /api/generos
func (h *LookupHandler) Genders(c *gin.Context) {
	rows, err := h.lookups.Genders(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// GET /api/estados-salud
func (h *LookupHandler) HealthStatuses(c *gin.Context) {
	rows, err := h.lookups.HealthStatuses(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// GET /api/producciones
func (h *LookupHandler) Productions(c *gin.Context) {
	rows, err := h.lookups.Productions(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// GET /api/tipos-premium
func (h *LookupHandler) PremiumTypes(c *gin.Context) {
	rows, err := h.lookups.PremiumTypes(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// GET /api/roles
func (h *LookupHandler) Roles(c *gin.Context) {
	rows, err := h.lookups.Roles(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}
