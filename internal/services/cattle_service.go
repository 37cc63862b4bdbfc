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

// CattleInput carries the writable fields of a head of cattle.
type CattleInput struct {
	Name               string  `json:"nombre" validate:"required"`
	TagNumber          int64   `json:"numero_identificacion"`
	PurchasePrice      float64 `json:"precio_compra" validate:"gte=0"`
	Note               string  `json:"nota"`
	FarmID             *uint   `json:"id_finca"`
	GenderID           *uint   `json:"id_genero"`
	HealthStatusID     *uint   `json:"id_estado_salud"`
	ProductionID       *uint   `json:"id_produccion"`
	VeterinaryRecordID *uint   `json:"id_informacion_veterinaria"`
}

// CattleService manages livestock records.
type CattleService struct {
	db *gorm.DB
}

// NewCattleService constructs a CattleService.
func NewCattleService(db *gorm.DB) (*CattleService, error) {
	if db == nil {
		return nil, errors.New("cattle service: db is required")
	}
	return &CattleService{db: db}, nil
}

// Create stores a new head of cattle, validating the referenced farm.
func (s *CattleService) Create(ctx context.Context, input CattleInput) (*models.Cattle, error) {
	if input.FarmID != nil {
		if err := s.checkFarm(ctx, *input.FarmID); err != nil {
			return nil, err
		}
	}

	head := models.Cattle{
		Name:               strings.TrimSpace(input.Name),
		TagNumber:          input.TagNumber,
		PurchasePrice:      input.PurchasePrice,
		Note:               strings.TrimSpace(input.Note),
		FarmID:             input.FarmID,
		GenderID:           input.GenderID,
		HealthStatusID:     input.HealthStatusID,
		ProductionID:       input.ProductionID,
		VeterinaryRecordID: input.VeterinaryRecordID,
	}

	if err := s.db.WithContext(ctx).Create(&head).Error; err != nil {
		return nil, fmt.Errorf("cattle service: create: %w", err)
	}
	return s.Get(ctx, head.ID)
}

// Get loads a head of cattle with its lookups.
func (s *CattleService) Get(ctx context.Context, id uint) (*models.Cattle, error) {
	var head models.Cattle
	if err := s.db.WithContext(ctx).
		Preload("Gender").Preload("HealthStatus").Preload("Production").
		Preload("VeterinaryRecord").
		First(&head, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Cattle not found")
		}
		return nil, fmt.Errorf("cattle service: find: %w", err)
	}
	return &head, nil
}

// List returns every head of cattle, optionally filtered by farm.
func (s *CattleService) List(ctx context.Context, farmID *uint) ([]models.Cattle, error) {
	query := s.db.WithContext(ctx).
		Preload("Gender").Preload("HealthStatus").Preload("Production").
		Order("id_ganado")
	if farmID != nil {
		query = query.Where("id_finca = ?", *farmID)
	}

	var cattle []models.Cattle
	if err := query.Find(&cattle).Error; err != nil {
		return nil, fmt.Errorf("cattle service: list: %w", err)
	}
	return cattle, nil
}

// Update applies changes to an existing head of cattle.
func (s *CattleService) Update(ctx context.Context, id uint, input CattleInput) (*models.Cattle, error) {
	head, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FarmID != nil {
		if err := s.checkFarm(ctx, *input.FarmID); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{
		"nombre":                input.Name,
		"numero_identificacion": input.TagNumber,
		"precio_compra":         input.PurchasePrice,
		"nota":                  input.Note,
	}
	if input.FarmID != nil {
		updates["id_finca"] = *input.FarmID
	}
	if input.GenderID != nil {
		updates["id_genero"] = *input.GenderID
	}
	if input.HealthStatusID != nil {
		updates["id_estado_salud"] = *input.HealthStatusID
	}
	if input.ProductionID != nil {
		updates["id_produccion"] = *input.ProductionID
	}
	if input.VeterinaryRecordID != nil {
		updates["id_informacion_veterinaria"] = *input.VeterinaryRecordID
	}

	if err := s.db.WithContext(ctx).Model(head).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("cattle service: update: %w", err)
	}
	return s.Get(ctx, id)
}

// AssignFarm moves a head of cattle to another farm (nil detaches it).
func (s *CattleService) AssignFarm(ctx context.Context, id uint, farmID *uint) (*models.Cattle, error) {
	head, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmID != nil {
		if err := s.checkFarm(ctx, *farmID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(head).Update("id_finca", farmID).Error; err != nil {
		return nil, fmt.Errorf("cattle service: assign farm: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a head of cattle and its sale links.
func (s *CattleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_ganado = ?", id).Delete(&models.SaleCattle{}).Error; err != nil {
			return fmt.Errorf("delete sale links: %w", err)
		}
		if err := tx.Delete(&models.Cattle{}, id).Error; err != nil {
			return fmt.Errorf("delete cattle: %w", err)
		}
		return nil
	})
}

func (s *CattleService) checkFarm(ctx context.Context, farmID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Farm{}).
		Where("id_finca = ?", farmID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("cattle service: check farm: %w", err)
	}
	if count == 0 {
		return apperrors.NewNotFound("Farm not found")
	}
	return nil
}
