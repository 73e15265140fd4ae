package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly handles YYYY-MM-DD dates in JSON and the database.
type DateOnly struct {
	time.Time
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format("2006-01-02"))), nil
}

// Scan implements sql.Scanner.
func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}
	if t, ok := value.(time.Time); ok {
		d.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into DateOnly", value)
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

// AcademicYear represents an academic year (e.g. 2025/2026).
type AcademicYear struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string      `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	StartDate DateOnly    `json:"start_date" gorm:"not null;index" validate:"required"`
	EndDate   DateOnly    `json:"end_date" gorm:"not null;index" validate:"required"`
	IsCurrent bool        `json:"is_current" gorm:"default:false;index"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time  `json:"deleted_at,omitempty" gorm:"index"`
	Semesters []*Semester `json:"semesters,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
}

// Semester represents one semester within an academic year. Invoices are
// issued once per student per semester.
type Semester struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AcademicYearID string        `json:"academic_year_id" gorm:"not null;index;type:uuid"`
	Name           string        `json:"name" gorm:"not null"`
	StartDate      DateOnly      `json:"start_date" gorm:"not null;type:date"`
	EndDate        DateOnly      `json:"end_date" gorm:"not null;type:date"`
	IsCurrent      bool          `json:"is_current" gorm:"default:false"`
	IsActive       bool          `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time     `json:"created_at" gorm:"default:now()"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"default:now()"`
	DeletedAt      *time.Time    `json:"deleted_at,omitempty" gorm:"index"`
	AcademicYear   *AcademicYear `json:"academic_year,omitempty" gorm:"foreignKey:AcademicYearID;references:ID"`
}

// IsCurrentByDate checks if the semester is current based on today's date.
func (s *Semester) IsCurrentByDate() bool {
	now := time.Now()
	return now.After(s.StartDate.Time) && now.Before(s.EndDate.Time)
}
