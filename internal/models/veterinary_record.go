package models

import "time"

// VeterinaryRecord holds one treatment entry (diagnosis plus applied treatment).
type VeterinaryRecord struct {
	ID            uint      `gorm:"column:id_informacion_veterinaria;primaryKey" json:"id_informacion_veterinaria"`
	TreatmentDate time.Time `gorm:"column:fecha_tratamiento;not null" json:"fecha_tratamiento"`
	Diagnosis     string    `gorm:"column:diagnostico" json:"diagnostico"`
	Treatment     string    `gorm:"column:tratamiento" json:"tratamiento"`
	Note          string    `gorm:"column:nota" json:"nota"`

	// Populated via the tratamiento_medicamento link table, not by gorm preload.
	Medications []Medication `gorm:"-" json:"medicamentos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VeterinaryRecord) TableName() string { return "informacion_veterinaria" }
