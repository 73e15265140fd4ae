package invoices

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/billing"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
)

// SetupInvoicesRoutes sets up the invoices routes
func SetupInvoicesRoutes(app *fiber.App, ledger *billing.Ledger) {
	invoices := app.Group("/invoices")
	invoices.Use(auth.AuthMiddleware)

	invoices.Get("/", func(c *fiber.Ctx) error {
		return c.Render("invoices/index", fiber.Map{
			"Title":       "Invoices - Alphil College",
			"CurrentPage": "invoices",
			"user":        c.Locals("user"),
		})
	})

	api := app.Group("/api/invoices")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetInvoicesAPI)
	api.Get("/stats", GetInvoiceStatsAPI)
	api.Get("/:id", GetInvoiceByIDAPI)

	api.Post("/", auth.RequireLedgerWrite(), IssueInvoiceAPI)
	api.Post("/bulk", auth.RequireLedgerWrite(), BulkIssueInvoicesAPI)
	api.Put("/:id/amount-due", auth.RequireLedgerWrite(), func(c *fiber.Ctx) error {
		return UpdateAmountDueAPI(c, ledger)
	})
	api.Post("/:id/reconcile", auth.RequireLedgerWrite(), func(c *fiber.Ctx) error {
		return ReconcileInvoiceAPI(c, ledger)
	})
	api.Delete("/:id", auth.RequireLedgerWrite(), DeleteInvoiceAPI)

	// Student-scoped listing
	studentAPI := app.Group("/api/students/:studentId/invoices")
	studentAPI.Use(auth.AuthMiddleware)
	studentAPI.Get("/", GetStudentInvoicesAPI)
}
