package feestructures

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupFeeStructuresRoutes sets up the fee structure routes
func SetupFeeStructuresRoutes(app *fiber.App) {
	api := app.Group("/api/fee-structures")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetFeeStructuresAPI)
	api.Get("/:id", GetFeeStructureByIDAPI)
	api.Post("/", auth.RequireLedgerWrite(), CreateFeeStructureAPI)
	api.Put("/:id", auth.RequireLedgerWrite(), UpdateFeeStructureAPI)
	api.Delete("/:id", auth.RequireLedgerWrite(), DeactivateFeeStructureAPI)
}

// GetFeeStructuresAPI lists fee structures filtered by program or semester
func GetFeeStructuresAPI(c *fiber.Ctx) error {
	structures, err := getFeeStructures(config.GetDB(), c.Query("program_id"), c.Query("semester_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load fee structures"})
	}
	return c.JSON(fiber.Map{"success": true, "data": structures})
}

// GetFeeStructureByIDAPI returns one fee structure
func GetFeeStructureByIDAPI(c *fiber.Ctx) error {
	fs, err := getFeeStructureByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee structure not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load fee structure"})
	}
	return c.JSON(fiber.Map{"success": true, "data": fs})
}

// CreateFeeStructureAPI defines the billed amount for a program and semester
func CreateFeeStructureAPI(c *fiber.Ctx) error {
	var fs models.FeeStructure
	if err := c.BodyParser(&fs); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if fs.ProgramID == "" || fs.SemesterID == "" || fs.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "program_id, semester_id and name are required"})
	}
	if fs.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "amount must be greater than zero"})
	}
	if fs.Currency == "" {
		fs.Currency = "UGX"
	}

	err := config.GetDB().QueryRow(
		`INSERT INTO fee_structures (program_id, semester_id, name, amount, currency, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		fs.ProgramID, fs.SemesterID, fs.Name, fs.Amount, fs.Currency, fs.Notes,
	).Scan(&fs.ID, &fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create fee structure"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": fs})
}

// UpdateFeeStructureAPI updates a fee structure. Changing the amount only
// affects invoices issued afterwards
func UpdateFeeStructureAPI(c *fiber.Ctx) error {
	var fs models.FeeStructure
	if err := c.BodyParser(&fs); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	fs.ID = c.Params("id")
	if fs.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "amount must be greater than zero"})
	}

	result, err := config.GetDB().Exec(
		`UPDATE fee_structures SET name = $1, amount = $2, currency = $3, notes = $4, updated_at = NOW()
		 WHERE id = $5 AND deleted_at IS NULL`,
		fs.Name, fs.Amount, fs.Currency, fs.Notes, fs.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update fee structure"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee structure not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": fs})
}

// DeactivateFeeStructureAPI retires a fee structure from future issuance
func DeactivateFeeStructureAPI(c *fiber.Ctx) error {
	result, err := config.GetDB().Exec(
		`UPDATE fee_structures SET is_active = false, updated_at = NOW()
		 WHERE id = $1 AND is_active = true AND deleted_at IS NULL`, c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to deactivate fee structure"})
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee structure not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Fee structure deactivated"})
}

func getFeeStructures(db *sql.DB, programID, semesterID string) ([]*models.FeeStructure, error) {
	query := `SELECT id, program_id, semester_id, name, amount, currency, notes, is_active,
			  created_at, updated_at
			  FROM fee_structures
			  WHERE deleted_at IS NULL`

	var args []interface{}
	argIndex := 1
	if programID != "" {
		query += fmt.Sprintf(" AND program_id = $%d", argIndex)
		args = append(args, programID)
		argIndex++
	}
	if semesterID != "" {
		query += fmt.Sprintf(" AND semester_id = $%d", argIndex)
		args = append(args, semesterID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		fs := &models.FeeStructure{}
		err := rows.Scan(&fs.ID, &fs.ProgramID, &fs.SemesterID, &fs.Name, &fs.Amount,
			&fs.Currency, &fs.Notes, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt)
		if err != nil {
			continue
		}
		structures = append(structures, fs)
	}
	return structures, nil
}

func getFeeStructureByID(db *sql.DB, id string) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{}
	err := db.QueryRow(
		`SELECT id, program_id, semester_id, name, amount, currency, notes, is_active, created_at, updated_at
		 FROM fee_structures WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&fs.ID, &fs.ProgramID, &fs.SemesterID, &fs.Name, &fs.Amount, &fs.Currency,
		&fs.Notes, &fs.IsActive, &fs.CreatedAt, &fs.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
