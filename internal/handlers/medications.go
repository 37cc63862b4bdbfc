package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// MedicationHandler exposes the medication catalogue.
type MedicationHandler struct {
	medications *services.MedicationService
}

func NewMedicationHandler(db *gorm.DB) (*MedicationHandler, error) {
	medications, err := services.NewMedicationService(db)
	if err != nil {
		return nil, err
	}
	return &MedicationHandler{medications: medications}, nil
}

// GET /api/medicamentos
func (h *MedicationHandler) List(c *gin.Context) {
	medications, err := h.medications.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, medications)
}

// GET /api/medicamentos/:id
func (h *MedicationHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	medication, err := h.medications.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, medication)
}

// POST /api/medicamentos
func (h *MedicationHandler) Create(c *gin.Context) {
	var body services.MedicationInput
	if !bindAndValidate(c, &body) {
		return
	}

	medication, err := h.medications.Create(requestContext(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, medication)
}

// PUT /api/medicamentos/:id
func (h *MedicationHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body services.MedicationInput
	if !bindAndValidate(c, &body) {
		return
	}

	medication, err := h.medications.Update(requestContext(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, medication)
}

// DELETE /api/medicamentos/:id
func (h *MedicationHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.medications.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Medication deleted", nil)
}
