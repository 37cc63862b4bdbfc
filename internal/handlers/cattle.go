package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	appErrors "github.com/lucassmelendez/ct-backend/pkg/errors"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// CattleHandler exposes livestock CRUD.
type CattleHandler struct {
	cattle *services.CattleService
}

func NewCattleHandler(db *gorm.DB) (*CattleHandler, error) {
	cattle, err := services.NewCattleService(db)
	if err != nil {
		return nil, err
	}
	return &CattleHandler{cattle: cattle}, nil
}

type assignFarmRequest struct {
	FarmID *uint `json:"id_finca"`
}

// GET /api/ganado
func (h *CattleHandler) List(c *gin.Context) {
	var farmID *uint
	if raw := strings.TrimSpace(c.Query("id_finca")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(c, appErrors.NewBadRequest("id_finca must be a positive integer"))
			return
		}
		value := uint(parsed)
		farmID = &value
	}

	cattle, err := h.cattle.List(requestContext(c), farmID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, cattle)
}

// GET /api/ganado/:id
func (h *CattleHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	head, err := h.cattle.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, head)
}

// POST /api/ganado
func (h *CattleHandler) Create(c *gin.Context) {
	var body services.CattleInput
	if !bindAndValidate(c, &body) {
		return
	}

	head, err := h.cattle.Create(requestContext(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, head)
}

// PUT /api/ganado/:id
func (h *CattleHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body services.CattleInput
	if !bindAndValidate(c, &body) {
		return
	}

	head, err := h.cattle.Update(requestContext(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, head)
}

// PUT /api/ganado/:id/finca
func (h *CattleHandler) AssignFarm(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body assignFarmRequest
	if !bindAndValidate(c, &body) {
		return
	}

	head, err := h.cattle.AssignFarm(requestContext(c), id, body.FarmID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, head)
}

// DELETE /api/ganado/:id
func (h *CattleHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.cattle.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Cattle deleted", nil)
}
