package timetable

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupTimetableRoutes sets up the timetable routes
func SetupTimetableRoutes(app *fiber.App) {
	timetable := app.Group("/timetable")
	timetable.Use(auth.AuthMiddleware)

	timetable.Get("/", func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("timetable/index", fiber.Map{
			"Title":       "Timetable - Alphil College",
			"CurrentPage": "timetable",
			"user":        user,
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
		})
	})

	api := app.Group("/api/timetable")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetTimetableAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), CreateEntryAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), UpdateEntryAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), DeleteEntryAPI)
}
