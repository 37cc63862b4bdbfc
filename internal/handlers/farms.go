package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// FarmHandler exposes farm CRUD and membership management.
type FarmHandler struct {
	farms *services.FarmService
}

func NewFarmHandler(db *gorm.DB) (*FarmHandler, error) {
	farms, err := services.NewFarmService(db)
	if err != nil {
		return nil, err
	}
	return &FarmHandler{farms: farms}, nil
}

type addMemberRequest struct {
	UserID uint `json:"id_usuario" validate:"required"`
}

// GET /api/fincas
func (h *FarmHandler) List(c *gin.Context) {
	ctx := requestContext(c)

	if c.Query("propias") == "true" {
		farms, err := h.farms.ListForUser(ctx, currentUserID(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, farms)
		return
	}

	farms, err := h.farms.List(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, farms)
}

// GET /api/fincas/:id
func (h *FarmHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	farm, err := h.farms.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, farm)
}

// POST /api/fincas
func (h *FarmHandler) Create(c *gin.Context) {
	var body services.FarmInput
	if !bindAndValidate(c, &body) {
		return
	}

	farm, err := h.farms.Create(requestContext(c), body, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, farm)
}

// PUT /api/fincas/:id
func (h *FarmHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body services.FarmInput
	if !bindAndValidate(c, &body) {
		return
	}

	farm, err := h.farms.Update(requestContext(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, farm)
}

// DELETE /api/fincas/:id
func (h *FarmHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.farms.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Farm deleted", nil)
}

// GET /api/fincas/:id/usuarios
func (h *FarmHandler) Members(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	members, err := h.farms.Members(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

// POST /api/fincas/:id/usuarios
func (h *FarmHandler) AddMember(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body addMemberRequest
	if !bindAndValidate(c, &body) {
		return
	}

	if err := h.farms.AddMember(requestContext(c), id, body.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Member added", nil)
}

// DELETE /api/fincas/:id/usuarios/:userID
func (h *FarmHandler) RemoveMember(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "userID")
	if !ok {
		return
	}

	if err := h.farms.RemoveMember(requestContext(c), id, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Member removed", nil)
}
