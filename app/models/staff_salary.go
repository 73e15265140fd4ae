package models

import "time"

// StaffBaseSalary represents the core compensation configuration for a staff
// member. Amounts are whole currency units.
type StaffBaseSalary struct {
	ID            string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StaffID       string       `json:"staff_id" gorm:"not null;type:uuid;index" validate:"required,uuid"`
	Amount        int64        `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Period        SalaryPeriod `json:"period" gorm:"not null;type:varchar(20)" validate:"required"`
	EffectiveDate time.Time    `json:"effective_date" gorm:"not null;type:date;default:CURRENT_DATE"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time   `json:"deleted_at,omitempty" gorm:"index"`

	Staff *Staff `json:"staff,omitempty" gorm:"foreignKey:StaffID;references:ID"`
}

// StaffAllowance represents an independent stipend on top of the base salary.
type StaffAllowance struct {
	ID            string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StaffID       string       `json:"staff_id" gorm:"not null;type:uuid;index" validate:"required,uuid"`
	Amount        int64        `json:"amount" gorm:"default:0;type:bigint"`
	Period        SalaryPeriod `json:"period" gorm:"default:'month';type:varchar(20)"`
	IsActive      bool         `json:"is_active" gorm:"default:true;not null"`
	EffectiveDate time.Time    `json:"effective_date" gorm:"not null;type:date;default:CURRENT_DATE"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time   `json:"deleted_at,omitempty" gorm:"index"`

	Staff *Staff `json:"staff,omitempty" gorm:"foreignKey:StaffID;references:ID"`
}

// StaffPayout represents a disbursement made to a staff member for a period.
type StaffPayout struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StaffID     string     `json:"staff_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount      int64      `json:"amount" gorm:"not null;type:bigint" validate:"required,gt=0"`
	Type        PayoutType `json:"type" gorm:"not null;type:varchar(20)" validate:"required"`
	PeriodStart time.Time  `json:"period_start" gorm:"not null;type:date" validate:"required"`
	PeriodEnd   time.Time  `json:"period_end" gorm:"not null;type:date" validate:"required"`
	PaidAt      time.Time  `json:"paid_at" gorm:"autoCreateTime"`
	Reference   string     `json:"reference" gorm:"type:varchar(100)"` // cheque number, transaction id, etc.
	Notes       string     `json:"notes" gorm:"type:text"`

	Staff *Staff `json:"staff,omitempty" gorm:"foreignKey:StaffID;references:ID"`
}
