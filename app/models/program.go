package models

import "time"

// Program represents a degree or diploma program offered by a department.
// Fee structures are defined per program per semester.
type Program struct {
	ID           string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name         string      `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code         string      `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	DepartmentID string      `json:"department_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Semesters    int         `json:"semesters" gorm:"not null;default:8"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	StudentCount int         `json:"student_count" gorm:"-"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time  `json:"deleted_at,omitempty" gorm:"index"`
	Department   *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
	Students     []*Student  `json:"students,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
}
