package semesters

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// GetAcademicYearsAPI lists academic years, newest first
func GetAcademicYearsAPI(c *fiber.Ctx) error {
	rows, err := config.GetDB().Query(
		`SELECT id, name, start_date, end_date, is_current, is_active, created_at, updated_at
		 FROM academic_years WHERE deleted_at IS NULL ORDER BY start_date DESC`)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load academic years"})
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		y := &models.AcademicYear{}
		err := rows.Scan(&y.ID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.IsActive,
			&y.CreatedAt, &y.UpdatedAt)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	return c.JSON(fiber.Map{"success": true, "data": years})
}

// CreateAcademicYearAPI creates an academic year
func CreateAcademicYearAPI(c *fiber.Ctx) error {
	var year models.AcademicYear
	if err := c.BodyParser(&year); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if year.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name is required"})
	}
	if !year.EndDate.Time.After(year.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "start_date must precede end_date"})
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO academic_years (name, start_date, end_date) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		year.Name, year.StartDate, year.EndDate,
	).Scan(&year.ID, &year.CreatedAt, &year.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create academic year"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": year})
}

// GetSemestersAPI lists semesters, optionally scoped to an academic year
func GetSemestersAPI(c *fiber.Ctx) error {
	query := `SELECT id, academic_year_id, name, start_date, end_date, is_current, is_active,
			  created_at, updated_at
			  FROM semesters WHERE deleted_at IS NULL`
	var args []interface{}
	if yearID := c.Query("academic_year_id"); yearID != "" {
		query += " AND academic_year_id = $1"
		args = append(args, yearID)
	}
	query += " ORDER BY start_date DESC"

	rows, err := config.GetDB().Query(query, args...)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load semesters"})
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		s := &models.Semester{}
		err := rows.Scan(&s.ID, &s.AcademicYearID, &s.Name, &s.StartDate, &s.EndDate,
			&s.IsCurrent, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			continue
		}
		semesters = append(semesters, s)
	}
	return c.JSON(fiber.Map{"success": true, "data": semesters})
}

// GetCurrentSemesterAPI returns the semester flagged as current
func GetCurrentSemesterAPI(c *fiber.Ctx) error {
	s := &models.Semester{}
	err := config.GetDB().QueryRow(
		`SELECT id, academic_year_id, name, start_date, end_date, is_current, is_active,
		 created_at, updated_at
		 FROM semesters WHERE is_current = true AND deleted_at IS NULL
		 LIMIT 1`,
	).Scan(&s.ID, &s.AcademicYearID, &s.Name, &s.StartDate, &s.EndDate,
		&s.IsCurrent, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "No current semester set"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load current semester"})
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// CreateSemesterAPI creates a semester within an academic year
func CreateSemesterAPI(c *fiber.Ctx) error {
	var s models.Semester
	if err := c.BodyParser(&s); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if s.Name == "" || s.AcademicYearID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name and academic_year_id are required"})
	}
	if !s.EndDate.Time.After(s.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "start_date must precede end_date"})
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO semesters (academic_year_id, name, start_date, end_date) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.AcademicYearID, s.Name, s.StartDate, s.EndDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create semester"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": s})
}

// SetCurrentSemesterAPI flags one semester as current, clearing the previous
// flag in the same transaction
func SetCurrentSemesterAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	semesterID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE semesters SET is_current = false WHERE is_current = true`); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to clear current semester"})
	}

	result, err := tx.Exec(
		`UPDATE semesters SET is_current = true, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, semesterID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to set current semester"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Semester not found"})
	}

	if err := tx.Commit(); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to commit"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Current semester updated"})
}
