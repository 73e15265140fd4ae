package models

import "time"

// Staff holds the employment profile for a user on payroll (lecturers and
// non-teaching staff alike).
type Staff struct {
	ID           string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	UserID       string      `json:"user_id" gorm:"uniqueIndex;not null;type:uuid" validate:"required,uuid"`
	StaffNo      string      `json:"staff_no" gorm:"uniqueIndex;not null" validate:"required"`
	Position     string      `json:"position" gorm:"not null" validate:"required"`
	DepartmentID *string     `json:"department_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	HireDate     DateOnly    `json:"hire_date" gorm:"not null;type:date"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time  `json:"deleted_at,omitempty" gorm:"index"`
	User         *User       `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
}
