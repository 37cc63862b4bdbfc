package models

// Gender is a cattle gender lookup row.
type Gender struct {
	ID          uint   `gorm:"column:id_genero;primaryKey" json:"id_genero"`
	Description string `gorm:"column:descripcion;uniqueIndex;not null" json:"descripcion"`
}

func (Gender) TableName() string { return "genero" }

// HealthStatus is a cattle health-state lookup row.
type HealthStatus struct {
	ID          uint   `gorm:"column:id_estado_salud;primaryKey" json:"id_estado_salud"`
	Description string `gorm:"column:descripcion;uniqueIndex;not null" json:"descripcion"`
}

func (HealthStatus) TableName() string { return "estado_salud" }

// Production classifies what a head of cattle is used for (leche, carne, ...).
type Production struct {
	ID          uint   `gorm:"column:id_produccion;primaryKey" json:"id_produccion"`
	Description string `gorm:"column:descripcion;uniqueIndex;not null" json:"descripcion"`
}

func (Production) TableName() string { return "produccion" }
