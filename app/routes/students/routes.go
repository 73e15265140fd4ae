package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupStudentsRoutes sets up the students routes
func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)

	students.Get("/", func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("students/index", fiber.Map{
			"Title":       "Students - Alphil College",
			"CurrentPage": "students",
			"user":        user,
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
		})
	})

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)
	api.Get("/:id", GetStudentByIDAPI)
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), CreateStudentAPI)
	api.Put("/:id", auth.RoleMiddleware(models.RoleAdmin, models.RoleRegistrar), UpdateStudentAPI)
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), DeleteStudentAPI)
}
