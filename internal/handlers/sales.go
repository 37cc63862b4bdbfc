package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// SaleHandler exposes sale recording and history.
type SaleHandler struct {
	sales *services.SaleService
}

func NewSaleHandler(db *gorm.DB) (*SaleHandler, error) {
	sales, err := services.NewSaleService(db)
	if err != nil {
		return nil, err
	}
	return &SaleHandler{sales: sales}, nil
}

// GET /api/ventas
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.sales.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sales)
}

// GET /api/ventas/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.sales.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sale)
}

// GET /api/ventas/stats
func (h *SaleHandler) Stats(c *gin.Context) {
	stats, err := h.sales.Stats(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/ventas/comprador/:comprador
func (h *SaleHandler) ListByBuyer(c *gin.Context) {
	sales, err := h.sales.ListByBuyer(requestContext(c), c.Param("comprador"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sales)
}

// POST /api/ventas
func (h *SaleHandler) Create(c *gin.Context) {
	var body services.SaleInput
	if !bindAndValidate(c, &body) {
		return
	}

	sale, err := h.sales.Create(requestContext(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sale)
}

// DELETE /api/ventas/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.sales.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Sale deleted", nil)
}
