package database

import (
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.Premium{},
		&models.Credential{},
		&models.User{},
		&models.Farm{},
		&models.FarmMember{},
		&models.Gender{},
		&models.HealthStatus{},
		&models.Production{},
		&models.VeterinaryRecord{},
		&models.Cattle{},
		&models.Medication{},
		&models.TreatmentMedication{},
		&models.Sale{},
		&models.SaleCattle{},
	)
}

// SeedData populates the lookup tables expected by the application.
func SeedData(db *gorm.DB) error {
	roles := []models.Role{
		{ID: models.RoleAdmin, Description: "admin"},
		{ID: models.RoleWorker, Description: "trabajador"},
		{ID: models.RoleVeterinarian, Description: "veterinario"},
	}
	for _, role := range roles {
		if err := db.Where(models.Role{ID: role.ID}).Attrs(role).FirstOrCreate(&models.Role{}).Error; err != nil {
			return err
		}
	}

	tiers := []models.Premium{
		{ID: models.PremiumFree, Description: "free", Price: 0},
		{ID: models.PremiumFull, Description: "premium", Price: 9990},
	}
	for _, tier := range tiers {
		if err := db.Where(models.Premium{ID: tier.ID}).Attrs(tier).FirstOrCreate(&models.Premium{}).Error; err != nil {
			return err
		}
	}

	genders := []models.Gender{
		{ID: 1, Description: "macho"},
		{ID: 2, Description: "hembra"},
	}
	for _, gender := range genders {
		if err := db.Where(models.Gender{ID: gender.ID}).Attrs(gender).FirstOrCreate(&models.Gender{}).Error; err != nil {
			return err
		}
	}

	states := []models.HealthStatus{
		{ID: 1, Description: "saludable"},
		{ID: 2, Description: "enfermo"},
		{ID: 3, Description: "en tratamiento"},
	}
	for _, state := range states {
		if err := db.Where(models.HealthStatus{ID: state.ID}).Attrs(state).FirstOrCreate(&models.HealthStatus{}).Error; err != nil {
			return err
		}
	}

	productions := []models.Production{
		{ID: 1, Description: "leche"},
		{ID: 2, Description: "carne"},
		{ID: 3, Description: "mixto"},
	}
	for _, production := range productions {
		if err := db.Where(models.Production{ID: production.ID}).Attrs(production).FirstOrCreate(&models.Production{}).Error; err != nil {
			return err
		}
	}

	return nil
}
