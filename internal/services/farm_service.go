package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/models"
	apperrors "github.com/lucassmelendez/ct-backend/pkg/errors"
)

// FarmInput carries the writable farm fields.
type FarmInput struct {
	Name string  `json:"nombre" validate:"required"`
	Size float64 `json:"tamano" validate:"gte=0"`
}

// FarmService manages farms and the membership rows that scope users to them.
type FarmService struct {
	db *gorm.DB
}

// NewFarmService constructs a FarmService.
func NewFarmService(db *gorm.DB) (*FarmService, error) {
	if db == nil {
		return nil, errors.New("farm service: db is required")
	}
	return &FarmService{db: db}, nil
}

// Create stores a new farm and links the creating user as its first member.
func (s *FarmService) Create(ctx context.Context, input FarmInput, ownerID uint) (*models.Farm, error) {
	farm := models.Farm{
		Name: strings.TrimSpace(input.Name),
		Size: input.Size,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&farm).Error; err != nil {
			return fmt.Errorf("create farm: %w", err)
		}
		if ownerID != 0 {
			member := models.FarmMember{UserID: ownerID, FarmID: farm.ID}
			if err := tx.Create(&member).Error; err != nil {
				return fmt.Errorf("create membership: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

// Get loads a farm by id.
func (s *FarmService) Get(ctx context.Context, id uint) (*models.Farm, error) {
	var farm models.Farm
	if err := s.db.WithContext(ctx).First(&farm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Farm not found")
		}
		return nil, fmt.Errorf("farm service: find farm: %w", err)
	}
	return &farm, nil
}

// List returns every farm ordered by id.
func (s *FarmService) List(ctx context.Context) ([]models.Farm, error) {
	var farms []models.Farm
	if err := s.db.WithContext(ctx).Order("id_finca").Find(&farms).Error; err != nil {
		return nil, fmt.Errorf("farm service: list farms: %w", err)
	}
	return farms, nil
}

// ListForUser returns the farms a user belongs to.
func (s *FarmService) ListForUser(ctx context.Context, userID uint) ([]models.Farm, error) {
	var farms []models.Farm
	if err := s.db.WithContext(ctx).
		Joins("JOIN usuario_finca ON usuario_finca.id_finca = finca.id_finca").
		Where("usuario_finca.id_usuario = ?", userID).
		Order("finca.id_finca").
		Find(&farms).Error; err != nil {
		return nil, fmt.Errorf("farm service: list user farms: %w", err)
	}
	return farms, nil
}

// Update applies farm changes.
func (s *FarmService) Update(ctx context.Context, id uint, input FarmInput) (*models.Farm, error) {
	farm, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"nombre": strings.TrimSpace(input.Name),
		"tamano": input.Size,
	}
	if err := s.db.WithContext(ctx).Model(farm).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("farm service: update farm: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a farm along with its memberships, detaching its cattle.
func (s *FarmService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_finca = ?", id).Delete(&models.FarmMember{}).Error; err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := tx.Model(&models.Cattle{}).
			Where("id_finca = ?", id).
			Update("id_finca", nil).Error; err != nil {
			return fmt.Errorf("detach cattle: %w", err)
		}
		if err := tx.Delete(&models.Farm{}, id).Error; err != nil {
			return fmt.Errorf("delete farm: %w", err)
		}
		return nil
	})
}

// IsMember reports whether a user belongs to a farm.
func (s *FarmService) IsMember(ctx context.Context, farmID, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.FarmMember{}).
		Where("id_finca = ? AND id_usuario = ?", farmID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("farm service: check membership: %w", err)
	}
	return count > 0, nil
}

// Members returns the users linked to a farm.
func (s *FarmService) Members(ctx context.Context, farmID uint) ([]models.User, error) {
	if _, err := s.Get(ctx, farmID); err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).
		Preload("Role").
		Joins("JOIN usuario_finca ON usuario_finca.id_usuario = usuario.id_usuario").
		Where("usuario_finca.id_finca = ?", farmID).
		Order("usuario.id_usuario").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("farm service: list members: %w", err)
	}
	return users, nil
}

// AddMember links a user to a farm. Adding an existing member is a no-op.
func (s *FarmService) AddMember(ctx context.Context, farmID, userID uint) error {
	if _, err := s.Get(ctx, farmID); err != nil {
		return err
	}

	member := models.FarmMember{UserID: userID, FarmID: farmID}
	if err := s.db.WithContext(ctx).
		Where("id_usuario = ? AND id_finca = ?", userID, farmID).
		FirstOrCreate(&member).Error; err != nil {
		return fmt.Errorf("farm service: add member: %w", err)
	}
	return nil
}

// RemoveMember unlinks a user from a farm.
func (s *FarmService) RemoveMember(ctx context.Context, farmID, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id_finca = ? AND id_usuario = ?", farmID, userID).
		Delete(&models.FarmMember{})
	if result.Error != nil {
		return fmt.Errorf("farm service: remove member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("Membership not found")
	}
	return nil
}
