package models

import "time"

// Canonical role names. Ledger mutations are restricted to Admin and Bursar.
const (
	RoleAdmin     = "Admin"
	RoleBursar    = "Bursar"
	RoleRegistrar = "Registrar"
	RoleLecturer  = "Lecturer"
	RoleStaff     = "Staff"
)

// Role represents a user role (e.g., Admin, Bursar, Registrar)
type Role struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Users     []*User    `json:"users,omitempty" gorm:"many2many:user_roles;"`
}
