package models

import "time"

// Sale records one livestock sale transaction.
type Sale struct {
	ID        uint    `gorm:"column:id_venta;primaryKey" json:"id_venta"`
	Quantity  int     `gorm:"column:cantidad;not null;default:0" json:"cantidad"`
	UnitPrice float64 `gorm:"column:precio_unitario;not null;default:0" json:"precio_unitario"`
	Total     float64 `gorm:"column:total;not null;default:0" json:"total"`
	Buyer     string  `gorm:"column:comprador" json:"comprador"`

	Cattle []SaleCattle `gorm:"foreignKey:SaleID" json:"ganado,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Sale) TableName() string { return "venta" }

// SaleCattle links an individual head of cattle to a sale.
type SaleCattle struct {
	ID       uint `gorm:"column:id_venta_ganado;primaryKey" json:"id_venta_ganado"`
	SaleID   uint `gorm:"column:id_venta;index;not null" json:"id_venta"`
	CattleID uint `gorm:"column:id_ganado;index;not null" json:"id_ganado"`

	Head *Cattle `gorm:"foreignKey:CattleID" json:"detalle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SaleCattle) TableName() string { return "venta_ganado" }
