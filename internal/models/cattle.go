package models

import "time"

// Cattle is a single head of livestock, optionally assigned to a farm.
type Cattle struct {
	ID            uint    `gorm:"column:id_ganado;primaryKey" json:"id_ganado"`
	Name          string  `gorm:"column:nombre;not null" json:"nombre"`
	TagNumber     int64   `gorm:"column:numero_identificacion;not null;default:0" json:"numero_identificacion"`
	PurchasePrice float64 `gorm:"column:precio_compra;not null;default:0" json:"precio_compra"`
	Note          string  `gorm:"column:nota" json:"nota"`

	FarmID *uint `gorm:"column:id_finca;index" json:"id_finca"`
	Farm   *Farm `gorm:"foreignKey:FarmID" json:"finca,omitempty"`

	GenderID *uint   `gorm:"column:id_genero" json:"id_genero"`
	Gender   *Gender `gorm:"foreignKey:GenderID" json:"genero,omitempty"`

	HealthStatusID *uint         `gorm:"column:id_estado_salud" json:"id_estado_salud"`
	HealthStatus   *HealthStatus `gorm:"foreignKey:HealthStatusID" json:"estado_salud,omitempty"`

	ProductionID *uint       `gorm:"column:id_produccion" json:"id_produccion"`
	Production   *Production `gorm:"foreignKey:ProductionID" json:"produccion,omitempty"`

	VeterinaryRecordID *uint             `gorm:"column:id_informacion_veterinaria" json:"id_informacion_veterinaria"`
	VeterinaryRecord   *VeterinaryRecord `gorm:"foreignKey:VeterinaryRecordID" json:"informacion_veterinaria,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cattle) TableName() string { return "ganado" }
