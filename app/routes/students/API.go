package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

// GetStudentsAPI lists students with search, filters and pagination
func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		ProgramID:  c.Query("program_id"),
		IntakeYear: c.QueryInt("intake_year", 0),
		SortBy:     c.Query("sort_by", "last_name"),
		SortOrder:  c.Query("sort_order", "asc"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}

	students, total, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load students"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
		"total":   total,
	})
}

// GetStudentByIDAPI returns one student
func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load student"})
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

// CreateStudentAPI registers a new student
func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validation.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Validation failed: " + err.Error()})
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Registration number or email already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": student})
}

// UpdateStudentAPI updates a student's profile
func UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	student.ID = c.Params("id")
	if err := validation.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Validation failed: " + err.Error()})
	}

	if err := database.UpdateStudent(config.GetDB(), &student); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "Registration number or email already in use"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"success": true, "data": student})
}

// DeleteStudentAPI soft-deletes a student
func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete student"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Student deleted"})
}
