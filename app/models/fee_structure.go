package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStructure defines the amount billed per student for one program in one
// semester. Invoice issuance reads AmountDue from here.
type FeeStructure struct {
	ID         string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ProgramID  string          `json:"program_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SemesterID string          `json:"semester_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name       string          `json:"name" gorm:"not null" validate:"required"`
	Amount     decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Currency   string          `json:"currency" gorm:"not null;default:'UGX';type:varchar(3)" validate:"required,len=3"`
	Notes      string          `json:"notes,omitempty" gorm:"type:text"`
	IsActive   bool            `json:"is_active" gorm:"default:true;index"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Program  *Program  `json:"program,omitempty" gorm:"foreignKey:ProgramID;references:ID"`
	Semester *Semester `json:"semester,omitempty" gorm:"foreignKey:SemesterID;references:ID"`
}
