package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dash := app.Group("/dashboard")
	dash.Use(auth.AuthMiddleware)

	dash.Get("/", func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("dashboard/index", fiber.Map{
			"Title":       "Dashboard - Alphil College",
			"CurrentPage": "dashboard",
			"user":        user,
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
		})
	})

	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetDashboardStatsAPI)
}

// GetDashboardStatsAPI returns the dashboard aggregates, optionally scoped to
// a semester
func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB(), c.Query("semester_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load dashboard stats"})
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
