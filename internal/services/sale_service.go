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

// SaleInput carries the writable fields of a sale. Quantity and Total are
// derived from the cattle list and unit price.
type SaleInput struct {
	UnitPrice float64 `json:"precio_unitario" validate:"gte=0"`
	Buyer     string  `json:"comprador"`
	CattleIDs []uint  `json:"ganado" validate:"required,min=1"`
}

// SaleService records livestock sales and detaches sold cattle from their farm.
type SaleService struct {
	db *gorm.DB
}

// NewSaleService constructs a SaleService.
func NewSaleService(db *gorm.DB) (*SaleService, error) {
	if db == nil {
		return nil, errors.New("sale service: db is required")
	}
	return &SaleService{db: db}, nil
}

// Create records a sale. Every head must exist and not already be sold; sold
// cattle are detached from their farm so they stop showing in herd listings.
func (s *SaleService) Create(ctx context.Context, input SaleInput) (*models.Sale, error) {
	if len(input.CattleIDs) == 0 {
		return nil, apperrors.NewBadRequest("A sale requires at least one head of cattle")
	}

	sale := models.Sale{
		Quantity:  len(input.CattleIDs),
		UnitPrice: input.UnitPrice,
		Total:     input.UnitPrice * float64(len(input.CattleIDs)),
		Buyer:     strings.TrimSpace(input.Buyer),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cattleID := range input.CattleIDs {
			var head models.Cattle
			if err := tx.First(&head, cattleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFound(fmt.Sprintf("Cattle %d not found", cattleID))
				}
				return fmt.Errorf("find cattle: %w", err)
			}

			var sold int64
			if err := tx.Model(&models.SaleCattle{}).
				Where("id_ganado = ?", cattleID).
				Count(&sold).Error; err != nil {
				return fmt.Errorf("check sold: %w", err)
			}
			if sold > 0 {
				return apperrors.ErrConflict.WithMessage(fmt.Sprintf("Cattle %d is already sold", cattleID))
			}
		}

		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		for _, cattleID := range input.CattleIDs {
			link := models.SaleCattle{SaleID: sale.ID, CattleID: cattleID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("link cattle: %w", err)
			}
			if err := tx.Model(&models.Cattle{}).
				Where("id_ganado = ?", cattleID).
				Update("id_finca", nil).Error; err != nil {
				return fmt.Errorf("detach cattle: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, sale.ID)
}

// Get loads a sale with its cattle.
func (s *SaleService) Get(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := s.db.WithContext(ctx).
		Preload("Cattle").Preload("Cattle.Head").
		First(&sale, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Sale not found")
		}
		return nil, fmt.Errorf("sale service: find: %w", err)
	}
	return &sale, nil
}

// List returns every sale, newest first.
func (s *SaleService) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.db.WithContext(ctx).
		Preload("Cattle").Preload("Cattle.Head").
		Order("id_venta DESC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("sale service: list: %w", err)
	}
	return sales, nil
}

// ListByBuyer returns sales whose buyer name contains the given term.
func (s *SaleService) ListByBuyer(ctx context.Context, buyer string) ([]models.Sale, error) {
	buyer = strings.TrimSpace(buyer)
	if buyer == "" {
		return nil, apperrors.NewBadRequest("Buyer is required")
	}

	var sales []models.Sale
	if err := s.db.WithContext(ctx).
		Preload("Cattle").Preload("Cattle.Head").
		Where("comprador LIKE ?", "%"+buyer+"%").
		Order("id_venta DESC").
		Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("sale service: list by buyer: %w", err)
	}
	return sales, nil
}

// SaleStats summarises the recorded sales.
type SaleStats struct {
	TotalSales  int64   `json:"totalVentas"`
	TotalIncome float64 `json:"totalIngresos"`
	TotalHeads  int64   `json:"totalAnimalesVendidos"`
	AverageSale float64 `json:"promedioVenta"`
}

// Stats aggregates sale count, income, heads sold and the average sale value.
func (s *SaleService) Stats(ctx context.Context) (*SaleStats, error) {
	var stats SaleStats
	row := s.db.WithContext(ctx).Model(&models.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS income, COALESCE(SUM(cantidad), 0) AS heads").
		Row()
	if err := row.Scan(&stats.TotalSales, &stats.TotalIncome, &stats.TotalHeads); err != nil {
		return nil, fmt.Errorf("sale service: stats: %w", err)
	}
	if stats.TotalSales > 0 {
		stats.AverageSale = stats.TotalIncome / float64(stats.TotalSales)
	}
	return &stats, nil
}

// Delete removes a sale and its cattle links. The cattle themselves remain.
func (s *SaleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_venta = ?", id).Delete(&models.SaleCattle{}).Error; err != nil {
			return fmt.Errorf("delete sale links: %w", err)
		}
		if err := tx.Delete(&models.Sale{}, id).Error; err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		return nil
	})
}
