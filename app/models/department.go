package models

import "time"

// Department represents an academic department (e.g. Computer Science).
type Department struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null" validate:"required"`
	HeadID    *string    `json:"head_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
	Head      *User      `json:"head,omitempty" gorm:"foreignKey:HeadID;references:ID"`
	Programs  []*Program `json:"programs,omitempty" gorm:"foreignKey:DepartmentID;references:ID"`
}
