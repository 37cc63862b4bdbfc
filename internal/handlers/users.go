package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	iauth "github.com/lucassmelendez/ct-backend/internal/auth"
	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// UserHandler exposes user CRUD and preference management.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(db *gorm.DB, jwt *iauth.JWTService) (*UserHandler, error) {
	users, err := services.NewUserService(db, jwt)
	if err != nil {
		return nil, err
	}
	return &UserHandler{users: users}, nil
}

type preferencesRequest struct {
	Preferences datatypes.JSON `json:"preferencias" validate:"required"`
}

// GET /api/usuarios
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GET /api/usuarios/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PUT /api/usuarios/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body services.UpdateUserInput
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.users.Update(requestContext(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// PUT /api/usuarios/:id/preferencias
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var body preferencesRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.users.UpdatePreferences(requestContext(c), id, body.Preferences)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DELETE /api/usuarios/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "User deleted", nil)
}
