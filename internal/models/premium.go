package models

// Premium tier identifiers seeded at migration time.
const (
	PremiumFree uint = 1
	PremiumFull uint = 2
)

// Premium describes a subscription tier.
type Premium struct {
	ID          uint    `gorm:"column:id_premium;primaryKey" json:"id_premium"`
	Description string  `gorm:"column:descripcion;uniqueIndex;not null" json:"descripcion"`
	Price       float64 `gorm:"column:precio;not null;default:0" json:"precio"`
}

func (Premium) TableName() string { return "premium" }
