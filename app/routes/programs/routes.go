package programs

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupProgramsRoutes sets up the programs routes
func SetupProgramsRoutes(app *fiber.App) {
	api := app.Group("/api/programs")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetProgramsAPI)
	api.Get("/:id", GetProgramByIDAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin), CreateProgramAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin), UpdateProgramAPI)
}

// GetProgramsAPI lists programs with student counts
func GetProgramsAPI(c *fiber.Ctx) error {
	programs, err := getAllPrograms(config.GetDB(), c.Query("department_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load programs"})
	}
	return c.JSON(fiber.Map{"success": true, "data": programs})
}

// GetProgramByIDAPI returns one program
func GetProgramByIDAPI(c *fiber.Ctx) error {
	program, err := getProgramByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Program not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load program"})
	}
	return c.JSON(fiber.Map{"success": true, "data": program})
}

// CreateProgramAPI creates a program under a department
func CreateProgramAPI(c *fiber.Ctx) error {
	var program models.Program
	if err := c.BodyParser(&program); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if program.Name == "" || program.Code == "" || program.DepartmentID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name, code and department_id are required"})
	}
	if program.Semesters <= 0 {
		program.Semesters = 8
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO programs (name, code, department_id, semesters) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		program.Name, program.Code, program.DepartmentID, program.Semesters,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create program"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": program})
}

// UpdateProgramAPI updates a program
func UpdateProgramAPI(c *fiber.Ctx) error {
	var program models.Program
	if err := c.BodyParser(&program); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	program.ID = c.Params("id")

	result, err := config.GetDB().Exec(
		`UPDATE programs SET name = $1, code = $2, department_id = $3, semesters = $4, updated_at = NOW()
		 WHERE id = $5 AND deleted_at IS NULL`,
		program.Name, program.Code, program.DepartmentID, program.Semesters, program.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update program"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Program not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": program})
}

func getAllPrograms(db *sql.DB, departmentID string) ([]*models.Program, error) {
	query := `SELECT p.id, p.name, p.code, p.department_id, p.semesters, p.is_active,
			  p.created_at, p.updated_at,
			  (SELECT COUNT(*) FROM students s WHERE s.program_id = p.id AND s.is_active = true AND s.deleted_at IS NULL)
			  FROM programs p
			  WHERE p.deleted_at IS NULL`

	var args []interface{}
	if departmentID != "" {
		query += " AND p.department_id = $1"
		args = append(args, departmentID)
	}
	query += " ORDER BY p.name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		p := &models.Program{}
		err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.DepartmentID, &p.Semesters, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &p.StudentCount)
		if err != nil {
			continue
		}
		programs = append(programs, p)
	}
	return programs, nil
}

func getProgramByID(db *sql.DB, id string) (*models.Program, error) {
	p := &models.Program{}
	err := db.QueryRow(
		`SELECT id, name, code, department_id, semesters, is_active, created_at, updated_at
		 FROM programs WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&p.ID, &p.Name, &p.Code, &p.DepartmentID, &p.Semesters, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
