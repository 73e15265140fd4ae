package semesters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupSemestersRoutes sets up the academic year and semester routes
func SetupSemestersRoutes(app *fiber.App) {
	yearsAPI := app.Group("/api/academic-years")
	yearsAPI.Use(auth.AuthMiddleware)

	yearsAPI.Get("/", GetAcademicYearsAPI)
	yearsAPI.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), CreateAcademicYearAPI)

	api := app.Group("/api/semesters")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetSemestersAPI)
	api.Get("/current", GetCurrentSemesterAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), CreateSemesterAPI)
	api.Put("/:id/current", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), SetCurrentSemesterAPI)
}
