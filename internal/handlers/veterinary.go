package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// VeterinaryHandler exposes treatment-record CRUD.
type VeterinaryHandler struct {
	records *services.VeterinaryService
}

func NewVeterinaryHandler(db *gorm.DB) (*VeterinaryHandler, error) {
	records, err := services.NewVeterinaryService(db)
	if err != nil {
		return nil, err
	}
	return &VeterinaryHandler{records: records}, nil
}

// GET /api/informacion-veterinaria
func (h *VeterinaryHandler) List(c *gin.Context) {
	records, err := h.records.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

// GET /api/informacion-veterinaria/:id
func (h *VeterinaryHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	record, err := h.records.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// POST /api/informacion-veterinaria
func (h *VeterinaryHandler) Create(c *gin.Context) {
	var body services.VeterinaryInput
	if !bindAndValidate(c, &body) {
		return
	}

	record, err := h.records.Create(requestContext(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, record)
}

// PUT /api/informacion-veterinaria/:id
func (h *VeterinaryHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body services.VeterinaryInput
	if !bindAndValidate(c, &body) {
		return
	}

	record, err := h.records.Update(requestContext(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// DELETE /api/informacion-veterinaria/:id
func (h *VeterinaryHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.records.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Veterinary record deleted", nil)
}
