package models

import "time"

// Medication is a catalogue entry for treatments.
type Medication struct {
	ID    uint   `gorm:"column:id_medicamento;primaryKey" json:"id_medicamento"`
	Name  string `gorm:"column:nombre;not null" json:"nombre"`
	Dose  string `gorm:"column:dosis" json:"dosis"`
	Hours string `gorm:"column:horas" json:"horas"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Medication) TableName() string { return "medicamento" }

// TreatmentMedication links a veterinary record to a prescribed medication.
type TreatmentMedication struct {
	ID                 uint `gorm:"column:id_tratamiento_medicamento;primaryKey" json:"id_tratamiento_medicamento"`
	VeterinaryRecordID uint `gorm:"column:id_informacion_veterinaria;index;not null" json:"id_informacion_veterinaria"`
	MedicationID       uint `gorm:"column:id_medicamento;index;not null" json:"id_medicamento"`

	Medication *Medication `gorm:"foreignKey:MedicationID" json:"medicamento,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (TreatmentMedication) TableName() string { return "tratamiento_medicamento" }
