package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/models"
)

// LookupService serves the read-only catalogue tables seeded at migration
// time (genders, health states, production types, premium tiers, roles).
type LookupService struct {
	db *gorm.DB
}

// NewLookupService constructs a LookupService.
func NewLookupService(db *gorm.DB) (*LookupService, error) {
	if db == nil {
		return nil, errors.New("lookup service: db is required")
	}
	return &LookupService{db: db}, nil
}

// Genders lists the cattle gender catalogue.
func (s *LookupService) Genders(ctx context.Context) ([]models.Gender, error) {
	var rows []models.Gender
	if err := s.db.WithContext(ctx).Order("id_genero").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup service: genders: %w", err)
	}
	return rows, nil
}

// HealthStatuses lists the health-state catalogue.
func (s *LookupService) HealthStatuses(ctx context.Context) ([]models.HealthStatus, error) {
	var rows []models.HealthStatus
	if err := s.db.WithContext(ctx).Order("id_estado_salud").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup service: health statuses: %w", err)
	}
	return rows, nil
}

// Productions lists the production-type catalogue.
func (s *LookupService) Productions(ctx context.Context) ([]models.Production, error) {
	var rows []models.Production
	if err := s.db.WithContext(ctx).Order("id_produccion").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup service: productions: %w", err)
	}
	return rows, nil
}

// PremiumTypes lists the subscription tiers.
func (s *LookupService) PremiumTypes(ctx context.Context) ([]models.Premium, error) {
	var rows []models.Premium
	if err := s.db.WithContext(ctx).Order("id_premium").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup service: premium types: %w", err)
	}
	return rows, nil
}

// Roles lists the application roles.
func (s *LookupService) Roles(ctx context.Context) ([]models.Role, error) {
	var rows []models.Role
	if err := s.db.WithContext(ctx).Order("id_rol").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("lookup service: roles: %w", err)
	}
	return rows, nil
}
