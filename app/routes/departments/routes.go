package departments

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupDepartmentsRoutes sets up the departments routes
func SetupDepartmentsRoutes(app *fiber.App) {
	api := app.Group("/api/departments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetDepartmentsAPI)
	api.Get("/:id", GetDepartmentByIDAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin), CreateDepartmentAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin), UpdateDepartmentAPI)
}

// GetDepartmentsAPI lists active departments with their programs
func GetDepartmentsAPI(c *fiber.Ctx) error {
	departments, err := getAllDepartments(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load departments"})
	}
	return c.JSON(fiber.Map{"success": true, "data": departments})
}

// GetDepartmentByIDAPI returns one department
func GetDepartmentByIDAPI(c *fiber.Ctx) error {
	dept, err := getDepartmentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Department not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load department"})
	}
	return c.JSON(fiber.Map{"success": true, "data": dept})
}

// CreateDepartmentAPI creates a department
func CreateDepartmentAPI(c *fiber.Ctx) error {
	var dept models.Department
	if err := c.BodyParser(&dept); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if dept.Name == "" || dept.Code == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name and code are required"})
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO departments (name, code, head_id) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		dept.Name, dept.Code, dept.HeadID,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create department"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": dept})
}

// UpdateDepartmentAPI updates a department
func UpdateDepartmentAPI(c *fiber.Ctx) error {
	var dept models.Department
	if err := c.BodyParser(&dept); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	dept.ID = c.Params("id")

	result, err := config.GetDB().Exec(
		`UPDATE departments SET name = $1, code = $2, head_id = $3, updated_at = NOW()
		 WHERE id = $4 AND deleted_at IS NULL`,
		dept.Name, dept.Code, dept.HeadID, dept.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update department"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Department not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": dept})
}

func getAllDepartments(db *sql.DB) ([]*models.Department, error) {
	query := `SELECT id, name, code, head_id, is_active, created_at, updated_at
			  FROM departments
			  WHERE deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d := &models.Department{}
		err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.HeadID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			continue
		}
		departments = append(departments, d)
	}
	return departments, nil
}

func getDepartmentByID(db *sql.DB, id string) (*models.Department, error) {
	d := &models.Department{}
	err := db.QueryRow(
		`SELECT id, name, code, head_id, is_active, created_at, updated_at
		 FROM departments WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&d.ID, &d.Name, &d.Code, &d.HeadID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
