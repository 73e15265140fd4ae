package models

import "time"

// Student represents a registered student.
type Student struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"omitempty,uuid"`
	RegNo       string     `json:"reg_no" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName   string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName    string     `json:"last_name" gorm:"not null" validate:"required"`
	Email       *string    `json:"email,omitempty" gorm:"uniqueIndex" validate:"omitempty,email"`
	Phone       string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Gender      Gender     `json:"gender" gorm:"type:varchar(10)" validate:"omitempty,oneof=male female other"`
	DateOfBirth *DateOnly  `json:"date_of_birth,omitempty" gorm:"type:date"`
	ProgramID   string     `json:"program_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	IntakeYear  int        `json:"intake_year" gorm:"not null"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Program     *Program   `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Invoices    []*Invoice `json:"invoices,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
