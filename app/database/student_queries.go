package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// StudentFilters represents filtering options for student listings.
type StudentFilters struct {
	Search     string
	Status     string
	ProgramID  string
	IntakeYear int
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// GetStudents returns students matching the filters plus the total count for
// pagination.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	baseQuery := `FROM students s
				  JOIN programs p ON s.program_id = p.id
				  WHERE s.deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(s.first_name ILIKE $%d OR s.last_name ILIKE $%d OR s.reg_no ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}
	if filters.Status == "active" {
		conditions = append(conditions, "s.is_active = true")
	} else if filters.Status == "inactive" {
		conditions = append(conditions, "s.is_active = false")
	}
	if filters.ProgramID != "" {
		conditions = append(conditions, fmt.Sprintf("s.program_id = $%d", argIndex))
		args = append(args, filters.ProgramID)
		argIndex++
	}
	if filters.IntakeYear != 0 {
		conditions = append(conditions, fmt.Sprintf("s.intake_year = $%d", argIndex))
		args = append(args, filters.IntakeYear)
		argIndex++
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := "s.created_at"
	switch filters.SortBy {
	case "name":
		sortBy = "s.last_name"
	case "reg_no":
		sortBy = "s.reg_no"
	case "intake_year":
		sortBy = "s.intake_year"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := `SELECT s.id, s.reg_no, s.first_name, s.last_name, s.email, s.phone, s.gender,
			  s.date_of_birth, s.program_id, s.intake_year, s.is_active, s.created_at, s.updated_at,
			  p.name, p.code ` + baseQuery +
		fmt.Sprintf(" ORDER BY %s %s", sortBy, sortOrder)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{Program: &models.Program{}}
		var gender sql.NullString
		err := rows.Scan(
			&s.ID, &s.RegNo, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &gender,
			&s.DateOfBirth, &s.ProgramID, &s.IntakeYear, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&s.Program.Name, &s.Program.Code,
		)
		if err != nil {
			continue
		}
		s.Gender = models.Gender(gender.String)
		s.Program.ID = s.ProgramID
		students = append(students, s)
	}
	return students, total, nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	s := &models.Student{Program: &models.Program{}}
	query := `SELECT s.id, s.reg_no, s.first_name, s.last_name, s.email, s.phone, s.gender,
			  s.date_of_birth, s.program_id, s.intake_year, s.is_active, s.created_at, s.updated_at,
			  p.name, p.code
			  FROM students s
			  JOIN programs p ON s.program_id = p.id
			  WHERE s.id = $1 AND s.deleted_at IS NULL`

	var gender sql.NullString
	err := db.QueryRow(query, studentID).Scan(
		&s.ID, &s.RegNo, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &gender,
		&s.DateOfBirth, &s.ProgramID, &s.IntakeYear, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.Program.Name, &s.Program.Code,
	)
	if err != nil {
		return nil, err
	}
	s.Gender = models.Gender(gender.String)
	s.Program.ID = s.ProgramID
	return s, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (reg_no, first_name, last_name, email, phone, gender,
			  date_of_birth, program_id, intake_year)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, created_at, updated_at`

	var gender interface{}
	if s.Gender != "" {
		gender = string(s.Gender)
	}
	return db.QueryRow(query,
		s.RegNo, s.FirstName, s.LastName, s.Email, s.Phone, gender,
		s.DateOfBirth, s.ProgramID, s.IntakeYear,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
			  SET first_name = $1, last_name = $2, email = $3, phone = $4, gender = $5,
			      date_of_birth = $6, program_id = $7, intake_year = $8, is_active = $9, updated_at = NOW()
			  WHERE id = $10 AND deleted_at IS NULL`

	var gender interface{}
	if s.Gender != "" {
		gender = string(s.Gender)
	}
	result, err := db.Exec(query,
		s.FirstName, s.LastName, s.Email, s.Phone, gender,
		s.DateOfBirth, s.ProgramID, s.IntakeYear, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteStudent soft-deletes a student and deactivates them.
func DeleteStudent(db *sql.DB, studentID string) error {
	result, err := db.Exec(
		`UPDATE students SET deleted_at = NOW(), is_active = false, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, studentID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
