package expenses

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupExpensesRoutes sets up the expenses routes
func SetupExpensesRoutes(app *fiber.App) {
	api := app.Group("/api/expenses")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleBursar))

	api.Get("/", GetExpensesAPI)
	api.Post("/", CreateExpenseAPI)
	api.Delete("/:id", DeleteExpenseAPI)

	categories := app.Group("/api/expense-categories")
	categories.Use(auth.AuthMiddleware)
	categories.Use(auth.RoleMiddleware(models.RoleAdmin, models.RoleBursar))

	categories.Get("/", GetCategoriesAPI)
	categories.Post("/", CreateCategoryAPI)
}

func GetExpensesAPI(c *fiber.Ctx) error {
	expenses, err := GetAllExpenses(config.GetDB(), c.Query("category_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load expenses"})
	}
	return c.JSON(fiber.Map{"success": true, "data": expenses})
}

func CreateExpenseAPI(c *fiber.Ctx) error {
	var e models.Expense
	if err := c.BodyParser(&e); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if e.CategoryID == "" || e.Title == "" || e.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "category_id, title and a positive amount are required",
		})
	}
	if e.Currency == "" {
		e.Currency = "UGX"
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	if err := CreateExpense(config.GetDB(), &e); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create expense"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": e})
}

func DeleteExpenseAPI(c *fiber.Ctx) error {
	if err := DeleteExpense(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Expense not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete expense"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Expense deleted"})
}

func GetCategoriesAPI(c *fiber.Ctx) error {
	categories, err := GetAllCategories(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load categories"})
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

func CreateCategoryAPI(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if cat.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "name is required"})
	}

	if err := CreateCategory(config.GetDB(), &cat); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create category"})
	}
	return c.Status(201).JSON(fiber.Map{"success": true, "data": cat})
}
