package enrollments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupEnrollmentsRoutes sets up the enrollment routes
func SetupEnrollmentsRoutes(app *fiber.App) {
	api := app.Group("/api/enrollments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetEnrollmentsAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), EnrollStudentAPI)
	api.Put("/:id/status", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), UpdateEnrollmentStatusAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), DropEnrollmentAPI)
}
