package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents the amount a student owes for one semester. AmountPaid
// and Balance are denormalized from the payments table and Status is derived
// from them; all three are maintained exclusively by the billing ledger.
// One invoice per (student, semester) is enforced by a unique constraint.
type Invoice struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SemesterID     string          `json:"semester_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeStructureID *string         `json:"fee_structure_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	AmountDue      decimal.Decimal `json:"amount_due" gorm:"not null;type:numeric(12,2)" validate:"required"`
	AmountPaid     decimal.Decimal `json:"amount_paid" gorm:"not null;type:numeric(12,2);default:0"`
	Balance        decimal.Decimal `json:"balance" gorm:"not null;type:numeric(12,2)"`
	Status         InvoiceStatus   `json:"status" gorm:"not null;default:'unpaid';index;type:varchar(10)"`
	Currency       string          `json:"currency" gorm:"not null;default:'UGX';type:varchar(3)"`
	IssuedDate     time.Time       `json:"issued_date" gorm:"not null;default:now()"`
	DueDate        time.Time       `json:"due_date" gorm:"not null;index;type:date"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Student      *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Semester     *Semester     `json:"semester,omitempty" gorm:"foreignKey:SemesterID;references:ID"`
	FeeStructure *FeeStructure `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
	Payments     []*Payment    `json:"payments,omitempty" gorm:"foreignKey:InvoiceID;references:ID"`
}

// IsOverdue reports whether an unsettled invoice is past its due date.
func (i *Invoice) IsOverdue() bool {
	return i.Status != InvoicePaid && time.Now().After(i.DueDate)
}
