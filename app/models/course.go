package models

import "time"

// Course represents a unit of study offered within a program.
type Course struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Code          string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	Title         string     `json:"title" gorm:"not null" validate:"required"`
	ProgramID     string     `json:"program_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreditUnits   int        `json:"credit_units" gorm:"not null;default:3" validate:"gt=0"`
	LecturerID    *string    `json:"lecturer_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	EnrolledCount int        `json:"enrolled_count" gorm:"-"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Program       *Program   `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Lecturer      *User      `json:"lecturer,omitempty" gorm:"foreignKey:LecturerID;references:ID"`
}
