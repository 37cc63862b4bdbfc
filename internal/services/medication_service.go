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

// MedicationInput carries the writable fields of a medication catalogue entry.
type MedicationInput struct {
	Name  string `json:"nombre" validate:"required"`
	Dose  string `json:"dosis"`
	Hours string `json:"horas"`
}

// MedicationService manages the medication catalogue.
type MedicationService struct {
	db *gorm.DB
}

// NewMedicationService constructs a MedicationService.
func NewMedicationService(db *gorm.DB) (*MedicationService, error) {
	if db == nil {
		return nil, errors.New("medication service: db is required")
	}
	return &MedicationService{db: db}, nil
}

// Create adds a catalogue entry.
func (s *MedicationService) Create(ctx context.Context, input MedicationInput) (*models.Medication, error) {
	medication := models.Medication{
		Name:  strings.TrimSpace(input.Name),
		Dose:  strings.TrimSpace(input.Dose),
		Hours: strings.TrimSpace(input.Hours),
	}
	if err := s.db.WithContext(ctx).Create(&medication).Error; err != nil {
		return nil, fmt.Errorf("medication service: create: %w", err)
	}
	return &medication, nil
}

// Get loads a catalogue entry by id.
func (s *MedicationService) Get(ctx context.Context, id uint) (*models.Medication, error) {
	var medication models.Medication
	if err := s.db.WithContext(ctx).First(&medication, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Medication not found")
		}
		return nil, fmt.Errorf("medication service: find: %w", err)
	}
	return &medication, nil
}

// List returns the catalogue ordered by name.
func (s *MedicationService) List(ctx context.Context) ([]models.Medication, error) {
	var medications []models.Medication
	if err := s.db.WithContext(ctx).Order("nombre").Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("medication service: list: %w", err)
	}
	return medications, nil
}

// Update applies changes to a catalogue entry.
func (s *MedicationService) Update(ctx context.Context, id uint, input MedicationInput) (*models.Medication, error) {
	medication, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"nombre": strings.TrimSpace(input.Name),
		"dosis":  strings.TrimSpace(input.Dose),
		"horas":  strings.TrimSpace(input.Hours),
	}
	if err := s.db.WithContext(ctx).Model(medication).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("medication service: update: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a catalogue entry. Entries referenced by a treatment cannot
// be removed.
func (s *MedicationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var links int64
	if err := s.db.WithContext(ctx).Model(&models.TreatmentMedication{}).
		Where("id_medicamento = ?", id).
		Count(&links).Error; err != nil {
		return fmt.Errorf("medication service: check links: %w", err)
	}
	if links > 0 {
		return apperrors.ErrConflict.WithMessage("Medication is referenced by treatment records")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Medication{}, id).Error; err != nil {
		return fmt.Errorf("medication service: delete: %w", err)
	}
	return nil
}
