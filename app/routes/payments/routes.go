package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/billing"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupPaymentsRoutes sets up the payments routes
func SetupPaymentsRoutes(app *fiber.App, ledger *billing.Ledger) {
	payments := app.Group("/payments")
	payments.Use(auth.AuthMiddleware)

	payments.Get("/", func(c *fiber.Ctx) error {
		return c.Render("payments/index", fiber.Map{
			"Title":       "Payments - Alphil College",
			"CurrentPage": "payments",
			"user":        c.Locals("user"),
		})
	})

	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetPaymentsAPI)
	api.Get("/:id", GetPaymentByIDAPI)

	// Ledger mutations are restricted to admins and bursars.
	api.Post("/", auth.RequireLedgerWrite(), func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, ledger)
	})
	api.Put("/:id", auth.RequireLedgerWrite(), func(c *fiber.Ctx) error {
		return UpdatePaymentAPI(c, ledger)
	})
	api.Delete("/:id", auth.RequireLedgerWrite(), func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, ledger)
	})
}
