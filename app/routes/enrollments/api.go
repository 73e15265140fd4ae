package enrollments

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// EnrollRequest enrolls a student in a course for a semester.
type EnrollRequest struct {
	StudentID  string `json:"student_id"`
	CourseID   string `json:"course_id"`
	SemesterID string `json:"semester_id"`
}

// GetEnrollmentsAPI lists enrollments filtered by student, course or semester
func GetEnrollmentsAPI(c *fiber.Ctx) error {
	enrollments, err := getEnrollments(config.GetDB(),
		c.Query("student_id"), c.Query("course_id"), c.Query("semester_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load enrollments"})
	}
	return c.JSON(fiber.Map{"success": true, "data": enrollments})
}

// EnrollStudentAPI enrolls a student in a course. A duplicate enrollment for
// the same course and semester is rejected by the unique constraint
func EnrollStudentAPI(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.StudentID == "" || req.CourseID == "" || req.SemesterID == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "student_id, course_id and semester_id are required",
		})
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		SemesterID: req.SemesterID,
		Status:     models.Enrolled,
	}
	err := config.GetDB().QueryRow(
		`INSERT INTO enrollments (student_id, course_id, semester_id, status)
		 VALUES ($1, $2, $3, 'enrolled')
		 RETURNING id, enrolled_at, updated_at`,
		req.StudentID, req.CourseID, req.SemesterID,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"error":   "Student is already enrolled in this course for the semester",
			})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to enroll student"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": enrollment})
}

// UpdateEnrollmentStatusAPI moves an enrollment between enrolled, dropped and
// completed
func UpdateEnrollmentStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status string `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	status := models.EnrollmentStatus(req.Status)
	switch status {
	case models.Enrolled, models.Dropped, models.Completed:
	default:
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Unknown enrollment status " + req.Status})
	}

	result, err := config.GetDB().Exec(
		`UPDATE enrollments SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND deleted_at IS NULL`,
		string(status), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update enrollment"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Enrollment not found"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Enrollment updated"})
}

// DropEnrollmentAPI soft-deletes an enrollment
func DropEnrollmentAPI(c *fiber.Ctx) error {
	result, err := config.GetDB().Exec(
		`UPDATE enrollments SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to drop enrollment"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Enrollment not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Enrollment removed"})
}

func getEnrollments(db *sql.DB, studentID, courseID, semesterID string) ([]*models.Enrollment, error) {
	query := `SELECT e.id, e.student_id, e.course_id, e.semester_id, e.status, e.enrolled_at, e.updated_at,
			  s.first_name, s.last_name, s.reg_no,
			  c.code, c.title
			  FROM enrollments e
			  JOIN students s ON e.student_id = s.id
			  JOIN courses c ON e.course_id = c.id
			  WHERE e.deleted_at IS NULL`

	var args []interface{}
	argIndex := 1
	if studentID != "" {
		query += fmt.Sprintf(" AND e.student_id = $%d", argIndex)
		args = append(args, studentID)
		argIndex++
	}
	if courseID != "" {
		query += fmt.Sprintf(" AND e.course_id = $%d", argIndex)
		args = append(args, courseID)
		argIndex++
	}
	if semesterID != "" {
		query += fmt.Sprintf(" AND e.semester_id = $%d", argIndex)
		args = append(args, semesterID)
	}
	query += " ORDER BY e.enrolled_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{Student: &models.Student{}, Course: &models.Course{}}
		var status string
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.SemesterID, &status, &e.EnrolledAt, &e.UpdatedAt,
			&e.Student.FirstName, &e.Student.LastName, &e.Student.RegNo,
			&e.Course.Code, &e.Course.Title,
		)
		if err != nil {
			continue
		}
		e.Status = models.EnrollmentStatus(status)
		e.Student.ID = e.StudentID
		e.Course.ID = e.CourseID
		enrollments = append(enrollments, e)
	}
	return enrollments, nil
}
