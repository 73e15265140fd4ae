package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/billing"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/auth"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/courses"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/dashboard"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/departments"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/enrollments"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/expenses"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/feestructures"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/invoices"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/payments"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/programs"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/semesters"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/staff"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/students"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/routes/timetable"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/services"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - Alphil College",
			"CurrentPage": "",
		})
	case 403:
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - Alphil College",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case 401:
		return c.Status(401).Render("error", fiber.Map{
			"Title":        "Unauthorized - Alphil College",
			"CurrentPage":  "",
			"ErrorCode":    "401",
			"ErrorTitle":   "Unauthorized",
			"ErrorMessage": "Please log in to access this resource.",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - Alphil College",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - Alphil College",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

// dbAuditor writes ledger audit entries through the shared audit log.
type dbAuditor struct{}

func (dbAuditor) Record(userID *string, action, targetTable, targetID, description string) {
	entry := &models.AuditLog{
		UserID:      userID,
		Action:      action,
		TargetTable: targetTable,
		TargetID:    targetID,
		Description: description,
	}
	if err := database.InsertAuditLog(config.GetDB(), entry); err != nil {
		log.Printf("Audit log write failed for %s: %v", action, err)
	}
}

func main() {
	// Set global time zone to East Africa Time
	loc, err := time.LoadLocation("Africa/Kampala")
	if err != nil {
		log.Printf("Warning: Failed to load Africa/Kampala location, falling back to UTC+3: %v", err)
		time.Local = time.FixedZone("EAT", 3*60*60)
	} else {
		time.Local = loc
	}

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB())

	// Wire the billing ledger with audit and cache invalidation
	ledgerOpts := []billing.Option{billing.WithAuditor(dbAuditor{})}
	if cache := services.NewResponseCache(config.AppConfig.RedisAddr); cache != nil {
		ledgerOpts = append(ledgerOpts, billing.WithInvalidator(cache))
	}
	ledger := billing.NewLedger(billing.NewSQLStore(config.GetDB()), ledgerOpts...)

	// Initialize template engine
	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.Reload(true) // Enable template reloading for development
	engine.Debug(false)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Static files
	app.Static("/static", "./static")

	// Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/auth/login")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	staff.SetupStaffRoutes(app)
	departments.SetupDepartmentsRoutes(app)
	programs.SetupProgramsRoutes(app)
	semesters.SetupSemestersRoutes(app)
	courses.SetupCoursesRoutes(app)
	enrollments.SetupEnrollmentsRoutes(app)
	timetable.SetupTimetableRoutes(app)
	feestructures.SetupFeeStructuresRoutes(app)
	invoices.SetupInvoicesRoutes(app, ledger)
	payments.SetupPaymentsRoutes(app, ledger)
	expenses.SetupExpensesRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	// Start server
	log.Println("Server starting on :8080")
	log.Fatal(app.Listen(":8080"))
}
