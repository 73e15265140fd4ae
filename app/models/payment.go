package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a single transaction against a student's invoice.
// Payments are soft-deleted; the invoice's paid total is always the sum of
// live payment rows.
type Payment struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	InvoiceID       string          `json:"invoice_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID       string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Method          PaymentMethod   `json:"method" gorm:"not null;type:varchar(20)" validate:"required"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"not null;index"`
	ReferenceNumber *string         `json:"reference_number,omitempty" gorm:"uniqueIndex"` // bank slip, receipt no, etc.
	RecordedBy      *string         `json:"recorded_by,omitempty" gorm:"index;type:uuid"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Invoice        *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;references:ID"`
	Student        *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	RecordedByUser *User    `json:"recorded_by_user,omitempty" gorm:"foreignKey:RecordedBy;references:ID"`
}
