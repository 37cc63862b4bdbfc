package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Credential stores login identity separately from the user profile,
// mirroring the original autentificar table.
type Credential struct {
	ID       string `gorm:"column:id_autentificar;primaryKey;type:uuid" json:"id_autentificar"`
	Email    string `gorm:"column:correo;uniqueIndex;not null" json:"correo"`
	Password string `gorm:"column:contrasena;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Credential) TableName() string { return "autentificar" }

// BeforeCreate ensures a UUID is present before persisting.
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// User is a farm-application user profile linked to a credential and a role.
type User struct {
	ID             uint   `gorm:"column:id_usuario;primaryKey" json:"id_usuario"`
	FirstName      string `gorm:"column:primer_nombre;not null" json:"primer_nombre"`
	MiddleName     string `gorm:"column:segundo_nombre" json:"segundo_nombre"`
	LastName       string `gorm:"column:primer_apellido;not null" json:"primer_apellido"`
	SecondLastName string `gorm:"column:segundo_apellido" json:"segundo_apellido"`

	AuthID     string      `gorm:"column:id_autentificar;type:uuid;uniqueIndex;not null" json:"id_autentificar"`
	Credential *Credential `gorm:"foreignKey:AuthID;references:ID" json:"-"`

	RoleID uint  `gorm:"column:id_rol;not null;default:2" json:"id_rol"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"rol,omitempty"`

	PremiumID uint     `gorm:"column:id_premium;not null;default:1" json:"id_premium"`
	Premium   *Premium `gorm:"foreignKey:PremiumID" json:"premium,omitempty"`

	Preferences datatypes.JSON `gorm:"column:preferencias" json:"preferencias,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuario" }

// FullName joins the non-empty name parts for display.
func (u *User) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName, u.SecondLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
