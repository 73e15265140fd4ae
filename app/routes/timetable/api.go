package timetable

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// EntryRequest is the payload for creating or updating a timetable slot.
type EntryRequest struct {
	CourseID   string `json:"course_id"`
	LecturerID string `json:"lecturer_id"`
	SemesterID string `json:"semester_id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room"`
}

// GetTimetableAPI lists timetable entries filtered by semester, lecturer or
// course
func GetTimetableAPI(c *fiber.Ctx) error {
	entries, err := getEntries(config.GetDB(),
		c.Query("semester_id"), c.Query("lecturer_id"), c.Query("course_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load timetable"})
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}

// CreateEntryAPI creates a timetable slot after checking lecturer and room
// conflicts
func CreateEntryAPI(c *fiber.Ctx) error {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if msg := validateEntry(&req); msg != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": msg})
	}

	day := NormalizeDay(req.Day)
	conflict, err := CheckTimeConflict(config.GetDB(),
		req.LecturerID, req.Room, req.SemesterID, day, req.StartTime, req.EndTime, "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check conflicts"})
	}
	if conflict {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Lecturer or room is already booked for this slot",
		})
	}

	entry := &models.TimetableEntry{
		CourseID:   req.CourseID,
		LecturerID: req.LecturerID,
		SemesterID: req.SemesterID,
		Day:        models.DayOfWeek(day),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
	}
	err = config.GetDB().QueryRow(
		`INSERT INTO timetable_entries (course_id, lecturer_id, semester_id, day_of_week, start_time, end_time, room)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		entry.CourseID, entry.LecturerID, entry.SemesterID, string(entry.Day),
		entry.StartTime, entry.EndTime, entry.Room,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create timetable entry"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": entry})
}

// UpdateEntryAPI updates a timetable slot with the same conflict checks
func UpdateEntryAPI(c *fiber.Ctx) error {
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if msg := validateEntry(&req); msg != "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": msg})
	}

	entryID := c.Params("id")
	day := NormalizeDay(req.Day)
	conflict, err := CheckTimeConflict(config.GetDB(),
		req.LecturerID, req.Room, req.SemesterID, day, req.StartTime, req.EndTime, entryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check conflicts"})
	}
	if conflict {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Lecturer or room is already booked for this slot",
		})
	}

	result, err := config.GetDB().Exec(
		`UPDATE timetable_entries
		 SET course_id = $1, lecturer_id = $2, semester_id = $3, day_of_week = $4,
		     start_time = $5, end_time = $6, room = $7, updated_at = NOW()
		 WHERE id = $8 AND is_active = true`,
		req.CourseID, req.LecturerID, req.SemesterID, day,
		req.StartTime, req.EndTime, req.Room, entryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update timetable entry"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Timetable entry not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Timetable entry updated"})
}

// DeleteEntryAPI deactivates a timetable slot
func DeleteEntryAPI(c *fiber.Ctx) error {
	result, err := config.GetDB().Exec(
		`UPDATE timetable_entries SET is_active = false, updated_at = NOW()
		 WHERE id = $1 AND is_active = true`, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete timetable entry"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Timetable entry not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Timetable entry removed"})
}

func validateEntry(req *EntryRequest) string {
	if req.CourseID == "" || req.LecturerID == "" || req.SemesterID == "" {
		return "course_id, lecturer_id and semester_id are required"
	}
	if !ValidateDayOfWeek(req.Day) {
		return "Invalid day of week"
	}
	if !ValidateTimeFormat(req.StartTime) || !ValidateTimeFormat(req.EndTime) {
		return "Times must be in HH:MM format"
	}
	if req.StartTime >= req.EndTime {
		return "start_time must precede end_time"
	}
	return ""
}

func getEntries(db *sql.DB, semesterID, lecturerID, courseID string) ([]*models.TimetableEntryResponse, error) {
	query := `SELECT t.id, t.course_id, t.lecturer_id, t.semester_id, t.day_of_week,
			  t.start_time, t.end_time, t.room, t.is_active, t.created_at, t.updated_at,
			  c.code, c.title,
			  u.first_name || ' ' || u.last_name
			  FROM timetable_entries t
			  JOIN courses c ON t.course_id = c.id
			  JOIN users u ON t.lecturer_id = u.id
			  WHERE t.is_active = true`

	var args []interface{}
	argIndex := 1
	if semesterID != "" {
		query += fmt.Sprintf(" AND t.semester_id = $%d", argIndex)
		args = append(args, semesterID)
		argIndex++
	}
	if lecturerID != "" {
		query += fmt.Sprintf(" AND t.lecturer_id = $%d", argIndex)
		args = append(args, lecturerID)
		argIndex++
	}
	if courseID != "" {
		query += fmt.Sprintf(" AND t.course_id = $%d", argIndex)
		args = append(args, courseID)
	}
	query += " ORDER BY t.day_of_week, t.start_time"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.TimetableEntryResponse
	for rows.Next() {
		e := &models.TimetableEntryResponse{}
		var day string
		err := rows.Scan(
			&e.ID, &e.CourseID, &e.LecturerID, &e.SemesterID, &day,
			&e.StartTime, &e.EndTime, &e.Room, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
			&e.CourseCode, &e.CourseTitle, &e.LecturerName,
		)
		if err != nil {
			continue
		}
		e.Day = models.DayOfWeek(day)
		entries = append(entries, e)
	}
	return entries, nil
}
