package staff

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupStaffRoutes sets up the staff and payroll routes
func SetupStaffRoutes(app *fiber.App) {
	staff := app.Group("/staff")
	staff.Use(auth.AuthMiddleware)

	staff.Get("/", func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("staff/index", fiber.Map{
			"Title":       "Staff - Alphil College",
			"CurrentPage": "staff",
			"user":        user,
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
		})
	})

	api := app.Group("/api/staff")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStaffAPI)
	api.Get("/:id", GetStaffByIDAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin), CreateStaffAPI)

	// Payroll
	api.Get("/:id/salary", auth.RoleMiddleware(models.RoleAdmin, models.RoleBursar), GetSalaryAPI)
	api.Put("/:id/salary", auth.RoleMiddleware(models.RoleAdmin), SetSalaryAPI)
	api.Get("/:id/payouts", auth.RoleMiddleware(models.RoleAdmin, models.RoleBursar), GetPayoutsAPI)
	api.Post("/:id/payouts", auth.RoleMiddleware(models.RoleAdmin, models.RoleBursar), CreatePayoutAPI)
}
