package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/auth"
	"github.com/lucassmelendez/ct-backend/internal/models"
	"github.com/lucassmelendez/ct-backend/pkg/crypto"
	apperrors "github.com/lucassmelendez/ct-backend/pkg/errors"
	"github.com/lucassmelendez/ct-backend/pkg/metrics"
)

// ErrEmailTaken signals a registration attempt with an email already in use.
var ErrEmailTaken = apperrors.New("EMAIL_TAKEN", "Email is already registered", 409)

// RegisterInput carries the fields required to create a user account.
type RegisterInput struct {
	Email          string `json:"correo" validate:"required,email"`
	Password       string `json:"contrasena" validate:"required,min=6"`
	FirstName      string `json:"primer_nombre" validate:"required"`
	MiddleName     string `json:"segundo_nombre"`
	LastName       string `json:"primer_apellido" validate:"required"`
	SecondLastName string `json:"segundo_apellido"`
	RoleID         uint   `json:"id_rol"`
}

// UpdateUserInput carries optional profile updates. Nil fields are left untouched.
type UpdateUserInput struct {
	FirstName      *string `json:"primer_nombre"`
	MiddleName     *string `json:"segundo_nombre"`
	LastName       *string `json:"primer_apellido"`
	SecondLastName *string `json:"segundo_apellido"`
	RoleID         *uint   `json:"id_rol"`
	PremiumID      *uint   `json:"id_premium"`
}

// TokenPair bundles the signed tokens returned on login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserService manages accounts: the credential row, the profile row, and the
// login flow that mints JWTs.
type UserService struct {
	db  *gorm.DB
	jwt *auth.JWTService
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, jwtService *auth.JWTService) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	if jwtService == nil {
		return nil, errors.New("user service: jwt service is required")
	}
	return &UserService{db: db, jwt: jwtService}, nil
}

// Register creates the credential and profile rows in one transaction.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	roleID := input.RoleID
	if roleID == 0 {
		roleID = models.RoleWorker
	}

	user := models.User{
		FirstName:      strings.TrimSpace(input.FirstName),
		MiddleName:     strings.TrimSpace(input.MiddleName),
		LastName:       strings.TrimSpace(input.LastName),
		SecondLastName: strings.TrimSpace(input.SecondLastName),
		RoleID:         roleID,
		PremiumID:      models.PremiumFree,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		credential := models.Credential{Email: email, Password: hash}
		if err := tx.Create(&credential).Error; err != nil {
			if isUniqueConstraintError(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("create credential: %w", err)
		}

		user.AuthID = credential.ID
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, user.ID)
}

// Login verifies the credentials and returns the user with a token pair.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var credential models.Credential
	if err := s.db.WithContext(ctx).Where("correo = ?", email).First(&credential).Error; err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("user service: find credential: %w", err)
	}

	if !crypto.VerifyPassword(credential.Password, password) {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Role").Preload("Premium").
		Where("id_autentificar = ?", credential.ID).
		First(&user).Error; err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("user service: find user: %w", err)
	}

	tokens, err := s.issueTokens(&user, credential.Email)
	if err != nil {
		return nil, nil, err
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	return &user, tokens, nil
}

// Refresh validates a refresh token and mints a new token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized.WithInternal(err)
	}

	user, err := s.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user, claims.Email)
}

// Get loads a user with its role and premium tier.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Role").Preload("Premium").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User not found")
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}
	return &user, nil
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Preload("Role").Preload("Premium").
		Order("id_usuario").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("user service: list users: %w", err)
	}
	return users, nil
}

// Update applies partial profile changes.
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		updates["primer_nombre"] = strings.TrimSpace(*input.FirstName)
	}
	if input.MiddleName != nil {
		updates["segundo_nombre"] = strings.TrimSpace(*input.MiddleName)
	}
	if input.LastName != nil {
		updates["primer_apellido"] = strings.TrimSpace(*input.LastName)
	}
	if input.SecondLastName != nil {
		updates["segundo_apellido"] = strings.TrimSpace(*input.SecondLastName)
	}
	if input.RoleID != nil {
		updates["id_rol"] = *input.RoleID
	}
	if input.PremiumID != nil {
		updates["id_premium"] = *input.PremiumID
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("user service: update user: %w", err)
	}
	return s.Get(ctx, id)
}

// UpdatePreferences replaces the stored preferences document.
func (s *UserService) UpdatePreferences(ctx context.Context, id uint, preferences datatypes.JSON) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(user).
		Update("preferencias", preferences).Error; err != nil {
		return nil, fmt.Errorf("user service: update preferences: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes the user profile, its memberships and its credential.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_usuario = ?", id).Delete(&models.FarmMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if err := tx.Where("id_autentificar = ?", user.AuthID).Delete(&models.Credential{}).Error; err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}
		return nil
	})
}

func (s *UserService) issueTokens(user *models.User, email string) (*TokenPair, error) {
	input := auth.TokenInput{
		UserID: user.ID,
		AuthID: user.AuthID,
		RoleID: user.RoleID,
		Email:  email,
	}

	access, err := s.jwt.GenerateAccessToken(input)
	if err != nil {
		return nil, fmt.Errorf("user service: access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(input)
	if err != nil {
		return nil, fmt.Errorf("user service: refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
