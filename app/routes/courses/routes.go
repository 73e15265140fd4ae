package courses

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupCoursesRoutes sets up the courses routes
func SetupCoursesRoutes(app *fiber.App) {
	api := app.Group("/api/courses")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetCoursesAPI)
	api.Get("/:id", GetCourseByIDAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), CreateCourseAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), UpdateCourseAPI)
	api.Put("/:id/lecturer", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), AssignLecturerAPI)
}

// GetCoursesAPI lists courses with enrollment counts
func GetCoursesAPI(c *fiber.Ctx) error {
	courses, err := getAllCourses(config.GetDB(), c.Query("program_id"), c.Query("semester_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load courses"})
	}
	return c.JSON(fiber.Map{"success": true, "data": courses})
}

// GetCourseByIDAPI returns one course
func GetCourseByIDAPI(c *fiber.Ctx) error {
	course, err := getCourseByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load course"})
	}
	return c.JSON(fiber.Map{"success": true, "data": course})
}

// CreateCourseAPI creates a course within a program
func CreateCourseAPI(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if course.Code == "" || course.Title == "" || course.ProgramID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "code, title and program_id are required"})
	}
	if course.CreditUnits <= 0 {
		course.CreditUnits = 3
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO courses (code, title, program_id, credit_units, lecturer_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		course.Code, course.Title, course.ProgramID, course.CreditUnits, course.LecturerID,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Course code already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create course"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": course})
}

// UpdateCourseAPI updates a course
func UpdateCourseAPI(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	course.ID = c.Params("id")

	result, err := config.GetDB().Exec(
		`UPDATE courses SET code = $1, title = $2, program_id = $3, credit_units = $4, updated_at = NOW()
		 WHERE id = $5 AND deleted_at IS NULL`,
		course.Code, course.Title, course.ProgramID, course.CreditUnits, course.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Course code already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update course"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": course})
}

// AssignLecturerAPI assigns or clears the lecturer of a course
func AssignLecturerAPI(c *fiber.Ctx) error {
	type AssignRequest struct {
		LecturerID *string `json:"lecturer_id"`
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	result, err := config.GetDB().Exec(
		`UPDATE courses SET lecturer_id = $1, updated_at = NOW()
		 WHERE id = $2 AND deleted_at IS NULL`,
		req.LecturerID, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to assign lecturer"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Course not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Lecturer updated"})
}

func getAllCourses(db *sql.DB, programID, semesterID string) ([]*models.Course, error) {
	query := `SELECT c.id, c.code, c.title, c.program_id, c.credit_units, c.lecturer_id, c.is_active,
			  c.created_at, c.updated_at,
			  (SELECT COUNT(*) FROM enrollments e
			   WHERE e.course_id = c.id AND e.status = 'enrolled' AND e.deleted_at IS NULL`

	var args []interface{}
	argIndex := 1
	if semesterID != "" {
		query += ` AND e.semester_id = $1`
		args = append(args, semesterID)
		argIndex++
	}
	query += `)
			  FROM courses c
			  WHERE c.deleted_at IS NULL`

	if programID != "" {
		query += fmt.Sprintf(" AND c.program_id = $%d", argIndex)
		args = append(args, programID)
	}
	query += " ORDER BY c.code"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(&course.ID, &course.Code, &course.Title, &course.ProgramID,
			&course.CreditUnits, &course.LecturerID, &course.IsActive,
			&course.CreatedAt, &course.UpdatedAt, &course.EnrolledCount)
		if err != nil {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func getCourseByID(db *sql.DB, id string) (*models.Course, error) {
	course := &models.Course{}
	err := db.QueryRow(
		`SELECT id, code, title, program_id, credit_units, lecturer_id, is_active, created_at, updated_at
		 FROM courses WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&course.ID, &course.Code, &course.Title, &course.ProgramID, &course.CreditUnits,
		&course.LecturerID, &course.IsActive, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}
