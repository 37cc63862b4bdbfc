package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lucassmelendez/ct-backend/internal/database/testutil"
	"github.com/lucassmelendez/ct-backend/internal/models"
)

func newVeterinaryFixture(t *testing.T) (*VeterinaryService, *gorm.DB, []models.Medication) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewVeterinaryService(db)
	require.NoError(t, err)

	medications := []models.Medication{
		{Name: "Ivermectina", Dose: "1ml/50kg", Hours: "24"},
		{Name: "Oxitetraciclina", Dose: "10mg/kg", Hours: "48"},
	}
	for i := range medications {
		require.NoError(t, db.Create(&medications[i]).Error)
	}

	return svc, db, medications
}

func TestVeterinaryCreateLinksMedicationsAndCattle(t *testing.T) {
	svc, db, medications := newVeterinaryFixture(t)
	ctx := context.Background()

	head := models.Cattle{Name: "Paciente"}
	require.NoError(t, db.Create(&head).Error)

	record, err := svc.Create(ctx, VeterinaryInput{
		TreatmentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Diagnosis:     "parasitosis",
		Treatment:     "desparasitacion",
		MedicationIDs: []uint{medications[0].ID, medications[1].ID},
		CattleID:      &head.ID,
	})
	require.NoError(t, err)
	require.Len(t, record.Medications, 2)
	require.Equal(t, "Ivermectina", record.Medications[0].Name)

	var reloaded models.Cattle
	require.NoError(t, db.First(&reloaded, head.ID).Error)
	require.NotNil(t, reloaded.VeterinaryRecordID)
	require.Equal(t, record.ID, *reloaded.VeterinaryRecordID)
}

func TestVeterinaryCreateUnknownMedicationRollsBack(t *testing.T) {
	svc, db, medications := newVeterinaryFixture(t)

	_, err := svc.Create(context.Background(), VeterinaryInput{
		TreatmentDate: time.Now(),
		Diagnosis:     "fiebre",
		MedicationIDs: []uint{medications[0].ID, 9999},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Medication not found")

	var records int64
	require.NoError(t, db.Model(&models.VeterinaryRecord{}).Count(&records).Error)
	require.Zero(t, records)

	var links int64
	require.NoError(t, db.Model(&models.TreatmentMedication{}).Count(&links).Error)
	require.Zero(t, links)
}

func TestVeterinaryUpdateReplacesMedicationSet(t *testing.T) {
	svc, _, medications := newVeterinaryFixture(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, VeterinaryInput{
		TreatmentDate: time.Now(),
		Diagnosis:     "mastitis",
		MedicationIDs: []uint{medications[0].ID},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, record.ID, VeterinaryInput{
		TreatmentDate: record.TreatmentDate,
		Diagnosis:     "mastitis cronica",
		MedicationIDs: []uint{medications[1].ID},
	})
	require.NoError(t, err)
	require.Equal(t, "mastitis cronica", updated.Diagnosis)
	require.Len(t, updated.Medications, 1)
	require.Equal(t, medications[1].ID, updated.Medications[0].ID)
}

func TestVeterinaryUpdateWithoutMedicationsKeepsSet(t *testing.T) {
	svc, _, medications := newVeterinaryFixture(t)
	ctx := context.Background()

	record, err := svc.Create(ctx, VeterinaryInput{
		TreatmentDate: time.Now(),
		Diagnosis:     "cojera",
		MedicationIDs: []uint{medications[0].ID, medications[1].ID},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, record.ID, VeterinaryInput{
		TreatmentDate: record.TreatmentDate,
		Note:          "revisar en una semana",
	})
	require.NoError(t, err)
	require.Len(t, updated.Medications, 2)
}

func TestVeterinaryDeleteDetachesCattle(t *testing.T) {
	svc, db, medications := newVeterinaryFixture(t)
	ctx := context.Background()

	head := models.Cattle{Name: "Recuperada"}
	require.NoError(t, db.Create(&head).Error)

	record, err := svc.Create(ctx, VeterinaryInput{
		TreatmentDate: time.Now(),
		Diagnosis:     "gripe",
		MedicationIDs: []uint{medications[0].ID},
		CattleID:      &head.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.ID))

	var reloaded models.Cattle
	require.NoError(t, db.First(&reloaded, head.ID).Error)
	require.Nil(t, reloaded.VeterinaryRecordID)

	var links int64
	require.NoError(t, db.Model(&models.TreatmentMedication{}).
		Where("id_informacion_veterinaria = ?", record.ID).
		Count(&links).Error)
	require.Zero(t, links)
}
