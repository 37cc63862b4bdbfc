package models

import "time"

// Farm is the top-level tenant unit. Cattle, memberships and binding codes
// are all scoped to a farm.
type Farm struct {
	ID   uint    `gorm:"column:id_finca;primaryKey" json:"id_finca"`
	Name string  `gorm:"column:nombre;not null" json:"nombre"`
	Size float64 `gorm:"column:tamano;not null;default:0" json:"tamano"`

	Cattle []Cattle `gorm:"foreignKey:FarmID" json:"ganado,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Farm) TableName() string { return "finca" }

// FarmMember links a user to a farm. The pair is unique; re-linking an
// existing member is an upsert, not an error.
type FarmMember struct {
	UserID uint `gorm:"column:id_usuario;primaryKey;autoIncrement:false" json:"id_usuario"`
	FarmID uint `gorm:"column:id_finca;primaryKey;autoIncrement:false" json:"id_finca"`

	User *User `gorm:"foreignKey:UserID" json:"usuario,omitempty"`
	Farm *Farm `gorm:"foreignKey:FarmID" json:"finca,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (FarmMember) TableName() string { return "usuario_finca" }
