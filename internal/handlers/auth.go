package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/lucassmelendez/ct-backend/internal/auth"
	"github.com/lucassmelendez/ct-backend/internal/services"
	"github.com/lucassmelendez/ct-backend/pkg/response"
)

// AuthHandler exposes registration, login and token refresh.
type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(db *gorm.DB, jwt *iauth.JWTService) (*AuthHandler, error) {
	users, err := services.NewUserService(db, jwt)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{users: users}, nil
}

type loginRequest struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var body services.RegisterInput
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.users.Register(requestContext(c), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if !bindAndValidate(c, &body) {
		return
	}

	user, tokens, err := h.users.Login(requestContext(c), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"usuario":      user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var body refreshRequest
	if !bindAndValidate(c, &body) {
		return
	}

	tokens, err := h.users.Refresh(requestContext(c), body.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.Get(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
