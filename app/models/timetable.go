package models

import "time"

// TimetableEntry represents a single scheduled lecture slot.
type TimetableEntry struct {
	ID         string    `json:"id" db:"id"`
	CourseID   string    `json:"course_id" db:"course_id"`
	LecturerID string    `json:"lecturer_id" db:"lecturer_id"`
	SemesterID string    `json:"semester_id" db:"semester_id"`
	Day        DayOfWeek `json:"day" db:"day_of_week"`
	StartTime  string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime    string    `json:"end_time" db:"end_time"`     // HH:MM
	Room       string    `json:"room" db:"room"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TimetableEntryResponse extends TimetableEntry with display fields.
type TimetableEntryResponse struct {
	TimetableEntry
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	LecturerName string `json:"lecturer_name"`
}
