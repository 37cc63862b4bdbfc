package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/database/testutil"
	"github.com/lucassmelendez/ct-backend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func newCattleFixture(t *testing.T) (*CattleService, *gorm.DB, models.Farm) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewCattleService(db)
	require.NoError(t, err)

	farm := models.Farm{Name: "Potrero Norte"}
	require.NoError(t, db.Create(&farm).Error)

	return svc, db, farm
}

func TestCattleCreateLoadsLookups(t *testing.T) {
	svc, _, farm := newCattleFixture(t)
	ctx := context.Background()

	head, err := svc.Create(ctx, CattleInput{
		Name:           "  Clarabella ",
		TagNumber:      982000123456789,
		PurchasePrice:  1500,
		FarmID:         &farm.ID,
		GenderID:       uintPtr(2),
		HealthStatusID: uintPtr(1),
		ProductionID:   uintPtr(1),
	})
	require.NoError(t, err)
	require.Equal(t, "Clarabella", head.Name)
	require.NotNil(t, head.Gender)
	require.Equal(t, "hembra", head.Gender.Description)
	require.NotNil(t, head.HealthStatus)
	require.Equal(t, "saludable", head.HealthStatus.Description)
	require.NotNil(t, head.Production)
	require.Equal(t, "leche", head.Production.Description)
}

func TestCattleCreateRejectsUnknownFarm(t *testing.T) {
	svc, _, _ := newCattleFixture(t)

	_, err := svc.Create(context.Background(), CattleInput{
		Name:   "Fantasma",
		FarmID: uintPtr(9999),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Farm not found")
}

func TestCattleListFiltersByFarm(t *testing.T) {
	svc, db, farm := newCattleFixture(t)
	ctx := context.Background()

	other := models.Farm{Name: "Potrero Sur"}
	require.NoError(t, db.Create(&other).Error)

	for _, tc := range []struct {
		name string
		farm *uint
	}{
		{"Uno", &farm.ID},
		{"Dos", &farm.ID},
		{"Tres", &other.ID},
	} {
		_, err := svc.Create(ctx, CattleInput{Name: tc.name, FarmID: tc.farm})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	filtered, err := svc.List(ctx, &farm.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestCattleUpdateKeepsUnsetForeignKeys(t *testing.T) {
	svc, _, farm := newCattleFixture(t)
	ctx := context.Background()

	head, err := svc.Create(ctx, CattleInput{
		Name:         "Torito",
		FarmID:       &farm.ID,
		GenderID:     uintPtr(1),
		ProductionID: uintPtr(2),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, head.ID, CattleInput{
		Name:          "Torito Grande",
		PurchasePrice: 2200,
	})
	require.NoError(t, err)
	require.Equal(t, "Torito Grande", updated.Name)
	require.Equal(t, float64(2200), updated.PurchasePrice)
	require.NotNil(t, updated.GenderID)
	require.Equal(t, uint(1), *updated.GenderID)
	require.NotNil(t, updated.FarmID)
	require.Equal(t, farm.ID, *updated.FarmID)
}

func TestCattleAssignFarmAndDetach(t *testing.T) {
	svc, db, farm := newCattleFixture(t)
	ctx := context.Background()

	other := models.Farm{Name: "Destino"}
	require.NoError(t, db.Create(&other).Error)

	head, err := svc.Create(ctx, CattleInput{Name: "Viajera", FarmID: &farm.ID})
	require.NoError(t, err)

	moved, err := svc.AssignFarm(ctx, head.ID, &other.ID)
	require.NoError(t, err)
	require.Equal(t, other.ID, *moved.FarmID)

	detached, err := svc.AssignFarm(ctx, head.ID, nil)
	require.NoError(t, err)
	require.Nil(t, detached.FarmID)
}

func TestCattleDeleteRemovesSaleLinks(t *testing.T) {
	svc, db, farm := newCattleFixture(t)
	ctx := context.Background()

	head, err := svc.Create(ctx, CattleInput{Name: "Vendida", FarmID: &farm.ID})
	require.NoError(t, err)

	sale := models.Sale{Quantity: 1, Total: 100}
	require.NoError(t, db.Create(&sale).Error)
	require.NoError(t, db.Create(&models.SaleCattle{SaleID: sale.ID, CattleID: head.ID}).Error)

	require.NoError(t, svc.Delete(ctx, head.ID))

	var links int64
	require.NoError(t, db.Model(&models.SaleCattle{}).Where("id_ganado = ?", head.ID).Count(&links).Error)
	require.Zero(t, links)

	_, err = svc.Get(ctx, head.ID)
	require.Error(t, err)
}
