package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lucassmelendez/ct-backend/internal/database/testutil"
	"github.com/lucassmelendez/ct-backend/internal/models"
)

func TestMedicationCRUD(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewMedicationService(db)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := svc.Create(ctx, MedicationInput{Name: " Penicilina ", Dose: "5ml", Hours: "12"})
	require.NoError(t, err)
	require.Equal(t, "Penicilina", created.Name)

	updated, err := svc.Update(ctx, created.ID, MedicationInput{Name: "Penicilina G", Dose: "10ml", Hours: "24"})
	require.NoError(t, err)
	require.Equal(t, "Penicilina G", updated.Name)
	require.Equal(t, "10ml", updated.Dose)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
}

func TestMedicationDeleteRejectedWhenReferenced(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	svc, err := NewMedicationService(db)
	require.NoError(t, err)
	ctx := context.Background()

	medication, err := svc.Create(ctx, MedicationInput{Name: "Vacuna aftosa"})
	require.NoError(t, err)

	record := models.VeterinaryRecord{TreatmentDate: time.Now(), Diagnosis: "preventivo"}
	require.NoError(t, db.Create(&record).Error)
	require.NoError(t, db.Create(&models.TreatmentMedication{
		VeterinaryRecordID: record.ID,
		MedicationID:       medication.ID,
	}).Error)

	err = svc.Delete(ctx, medication.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "referenced")

	// Still present.
	_, err = svc.Get(ctx, medication.ID)
	require.NoError(t, err)
}
