package models

import "time"

// AuditLog records who changed what. Inserts are best-effort and never share
// a transaction with the mutation they describe.
type AuditLog struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      *string   `json:"user_id,omitempty" gorm:"index;type:uuid"`
	Action      string    `json:"action" gorm:"not null"` // e.g. payment.record, invoice.issue
	TargetTable string    `json:"target_table" gorm:"not null"`
	TargetID    string    `json:"target_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Joined field
	ActorName string `json:"actor_name,omitempty" gorm:"-"`
}
