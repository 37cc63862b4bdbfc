package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// BindingHandler exposes the farm-binding code flow: a farm issues a short
// code, a worker or veterinarian redeems it to join the farm.
type BindingHandler struct {
	bindings *services.BindingService
}

func NewBindingHandler(bindings *services.BindingService) *BindingHandler {
	return &BindingHandler{bindings: bindings}
}

type generateBindingRequest struct {
	FarmID          uint   `json:"idFinca" validate:"required"`
	Kind            string `json:"tipo" validate:"required"`
	DurationMinutes int    `json:"duracionMinutos" validate:"gte=0"`
}

type redeemBindingRequest struct {
	Code string `json:"codigo" validate:"required"`
}

// POST /api/vincular/generar
func (h *BindingHandler) Generate(c *gin.Context) {
	var body generateBindingRequest
	if !bindAndValidate(c, &body) {
		return
	}

	duration := time.Duration(body.DurationMinutes) * time.Minute
	code, err := h.bindings.Issue(requestContext(c), body.FarmID, body.Kind, duration)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, code)
}

// POST /api/vincular/verificar
func (h *BindingHandler) Redeem(c *gin.Context) {
	var body redeemBindingRequest
	if !bindAndValidate(c, &body) {
		return
	}

	redemption, err := h.bindings.Redeem(requestContext(c), body.Code, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Binding completed", redemption)
}

// GET /api/vincular/finca/:idFinca
func (h *BindingHandler) ListActive(c *gin.Context) {
	farmID, ok := parseUintParam(c, "idFinca")
	if !ok {
		return
	}

	codes := h.bindings.ListActive(farmID)
	response.Success(c, http.StatusOK, gin.H{
		"codigos": codes,
		"total":   len(codes),
	})
}

// DELETE /api/vincular/codigo/:codigo/finca/:idFinca
func (h *BindingHandler) Revoke(c *gin.Context) {
	farmID, ok := parseUintParam(c, "idFinca")
	if !ok {
		return
	}
	if err := h.bindings.Revoke(c.Param("codigo"), farmID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Binding code revoked", nil)
}
