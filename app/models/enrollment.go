package models

import "time"

// Enrollment links a student to a course offering for a semester. Duplicate
// enrollments are blocked by a unique (student_id, course_id, semester_id)
// constraint.
type Enrollment struct {
	ID         string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID  string           `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CourseID   string           `json:"course_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SemesterID string           `json:"semester_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status     EnrollmentStatus `json:"status" gorm:"not null;default:'enrolled';type:varchar(20)"`
	EnrolledAt time.Time        `json:"enrolled_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt  *time.Time       `json:"deleted_at,omitempty" gorm:"index"`

	Student  *Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Course   *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Semester *Semester `json:"semester,omitempty" gorm:"foreignKey:SemesterID;references:ID"`
}
