package models

// Well-known role identifiers seeded at migration time. Binding codes map a
// role type onto the role a redeeming user must already hold.
const (
	RoleAdmin        uint = 1
	RoleWorker       uint = 2
	RoleVeterinarian uint = 3
)

// Role describes an application role (admin, trabajador, veterinario).
type Role struct {
	ID          uint   `gorm:"column:id_rol;primaryKey" json:"id_rol"`
	Description string `gorm:"column:descripcion;uniqueIndex;not null" json:"descripcion"`

	Users []User `gorm:"foreignKey:RoleID" json:"-"`
}

// TableName keeps the original schema naming.
func (Role) TableName() string { return "rol" }
