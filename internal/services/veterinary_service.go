package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/models"
	apperrors "github.com/lucassmelendez/ct-backend/pkg/errors"
)

// VeterinaryInput carries the writable fields of a treatment record.
type VeterinaryInput struct {
	TreatmentDate time.Time `json:"fecha_tratamiento" validate:"required"`
	Diagnosis     string    `json:"diagnostico"`
	Treatment     string    `json:"tratamiento"`
	Note          string    `json:"nota"`
	MedicationIDs []uint    `json:"medicamentos"`
	CattleID      *uint     `json:"id_ganado"`
}

// VeterinaryService manages treatment records and their medication links.
type VeterinaryService struct {
	db *gorm.DB
}

// NewVeterinaryService constructs a VeterinaryService.
func NewVeterinaryService(db *gorm.DB) (*VeterinaryService, error) {
	if db == nil {
		return nil, errors.New("veterinary service: db is required")
	}
	return &VeterinaryService{db: db}, nil
}

// Create stores a treatment record, links its medications and optionally
// attaches it to a head of cattle.
func (s *VeterinaryService) Create(ctx context.Context, input VeterinaryInput) (*models.VeterinaryRecord, error) {
	record := models.VeterinaryRecord{
		TreatmentDate: input.TreatmentDate,
		Diagnosis:     strings.TrimSpace(input.Diagnosis),
		Treatment:     strings.TrimSpace(input.Treatment),
		Note:          strings.TrimSpace(input.Note),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("create record: %w", err)
		}
		if err := s.replaceMedications(tx, record.ID, input.MedicationIDs); err != nil {
			return err
		}
		if input.CattleID != nil {
			result := tx.Model(&models.Cattle{}).
				Where("id_ganado = ?", *input.CattleID).
				Update("id_informacion_veterinaria", record.ID)
			if result.Error != nil {
				return fmt.Errorf("attach cattle: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return apperrors.NewNotFound("Cattle not found")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, record.ID)
}

// Get loads a treatment record with its medications.
func (s *VeterinaryService) Get(ctx context.Context, id uint) (*models.VeterinaryRecord, error) {
	var record models.VeterinaryRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Veterinary record not found")
		}
		return nil, fmt.Errorf("veterinary service: find: %w", err)
	}

	medications, err := s.medicationsFor(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Medications = medications
	return &record, nil
}

// List returns every treatment record, newest first, with medications attached.
func (s *VeterinaryService) List(ctx context.Context) ([]models.VeterinaryRecord, error) {
	var records []models.VeterinaryRecord
	if err := s.db.WithContext(ctx).
		Order("fecha_tratamiento DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("veterinary service: list: %w", err)
	}

	for i := range records {
		medications, err := s.medicationsFor(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Medications = medications
	}
	return records, nil
}

// Update applies changes to a treatment record, replacing its medication set
// when one is provided.
func (s *VeterinaryService) Update(ctx context.Context, id uint, input VeterinaryInput) (*models.VeterinaryRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"fecha_tratamiento": input.TreatmentDate,
			"diagnostico":       strings.TrimSpace(input.Diagnosis),
			"tratamiento":       strings.TrimSpace(input.Treatment),
			"nota":              strings.TrimSpace(input.Note),
		}
		if err := tx.Model(record).Updates(updates).Error; err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		if input.MedicationIDs != nil {
			if err := tx.Where("id_informacion_veterinaria = ?", id).
				Delete(&models.TreatmentMedication{}).Error; err != nil {
				return fmt.Errorf("clear medications: %w", err)
			}
			if err := s.replaceMedications(tx, id, input.MedicationIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a treatment record, its medication links and any cattle
// references to it.
func (s *VeterinaryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_informacion_veterinaria = ?", id).
			Delete(&models.TreatmentMedication{}).Error; err != nil {
			return fmt.Errorf("delete medication links: %w", err)
		}
		if err := tx.Model(&models.Cattle{}).
			Where("id_informacion_veterinaria = ?", id).
			Update("id_informacion_veterinaria", nil).Error; err != nil {
			return fmt.Errorf("detach cattle: %w", err)
		}
		if err := tx.Delete(&models.VeterinaryRecord{}, id).Error; err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		return nil
	})
}

func (s *VeterinaryService) replaceMedications(tx *gorm.DB, recordID uint, medicationIDs []uint) error {
	for _, medicationID := range medicationIDs {
		var count int64
		if err := tx.Model(&models.Medication{}).
			Where("id_medicamento = ?", medicationID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check medication: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFound("Medication not found")
		}

		link := models.TreatmentMedication{
			VeterinaryRecordID: recordID,
			MedicationID:       medicationID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link medication: %w", err)
		}
	}
	return nil
}

func (s *VeterinaryService) medicationsFor(ctx context.Context, recordID uint) ([]models.Medication, error) {
	var medications []models.Medication
	if err := s.db.WithContext(ctx).
		Joins("JOIN tratamiento_medicamento ON tratamiento_medicamento.id_medicamento = medicamento.id_medicamento").
		Where("tratamiento_medicamento.id_informacion_veterinaria = ?", recordID).
		Order("medicamento.id_medicamento").
		Find(&medications).Error; err != nil {
		return nil, fmt.Errorf("veterinary service: load medications: %w", err)
	}
	return medications, nil
}
