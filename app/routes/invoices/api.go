package invoices

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/billing"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/config"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/database"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

// IssueInvoiceRequest is the payload for issuing a single invoice.
type IssueInvoiceRequest struct {
	StudentID      string          `json:"student_id" validate:"required,uuid"`
	SemesterID     string          `json:"semester_id" validate:"required,uuid"`
	FeeStructureID *string         `json:"fee_structure_id,omitempty" validate:"omitempty,uuid"`
	AmountDue      decimal.Decimal `json:"amount_due"`
	Currency       string          `json:"currency" validate:"omitempty,len=3"`
	DueDate        time.Time       `json:"due_date"`
}

// GetInvoicesAPI lists invoices with optional filters
func GetInvoicesAPI(c *fiber.Ctx) error {
	filters := database.InvoiceFilters{
		StudentID:  c.Query("student_id"),
		SemesterID: c.Query("semester_id"),
		Status:     c.Query("status"),
		Overdue:    c.Query("overdue") == "true",
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}

	invoices, err := database.GetInvoices(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load invoices"})
	}
	return c.JSON(fiber.Map{"success": true, "data": invoices})
}

// GetInvoiceByIDAPI returns one invoice with its payments
func GetInvoiceByIDAPI(c *fiber.Ctx) error {
	invoice, err := database.GetInvoiceByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Invoice not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load invoice"})
	}
	return c.JSON(fiber.Map{"success": true, "data": invoice})
}

// GetStudentInvoicesAPI lists all invoices of one student
func GetStudentInvoicesAPI(c *fiber.Ctx) error {
	invoices, err := database.GetInvoices(config.GetDB(), database.InvoiceFilters{
		StudentID: c.Params("studentId"),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load invoices"})
	}
	return c.JSON(fiber.Map{"success": true, "data": invoices})
}

// GetInvoiceStatsAPI returns billing aggregates, optionally per semester
func GetInvoiceStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetInvoiceStats(config.GetDB(), c.Query("semester_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load invoice stats"})
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// IssueInvoiceAPI issues one invoice to a student for a semester
func IssueInvoiceAPI(c *fiber.Ctx) error {
	var req IssueInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Validation failed: " + err.Error()})
	}
	if req.AmountDue.LessThanOrEqual(decimal.Zero) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "amount_due must be greater than zero"})
	}
	if req.Currency == "" {
		req.Currency = "UGX"
	}

	inv := &models.Invoice{
		StudentID:      req.StudentID,
		SemesterID:     req.SemesterID,
		FeeStructureID: req.FeeStructureID,
		AmountDue:      req.AmountDue,
		Currency:       req.Currency,
		DueDate:        req.DueDate,
	}
	if err := database.IssueInvoice(config.GetDB(), inv); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{
				"success": false,
				"error":   "Student already has an invoice for this semester",
			})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to issue invoice"})
	}
	inv.AmountPaid = decimal.Zero
	inv.Balance = req.AmountDue
	inv.Status = models.InvoiceUnpaid

	return c.Status(201).JSON(fiber.Map{"success": true, "data": inv})
}

// BulkIssueInvoicesAPI issues invoices from a fee structure to every active
// student of its program who has none for the semester yet
func BulkIssueInvoicesAPI(c *fiber.Ctx) error {
	type BulkRequest struct {
		FeeStructureID string    `json:"fee_structure_id"`
		DueDate        time.Time `json:"due_date"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.FeeStructureID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "fee_structure_id is required"})
	}

	fs, err := getFeeStructure(config.GetDB(), req.FeeStructureID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Fee structure not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load fee structure"})
	}

	issued, err := database.IssueInvoicesForProgram(config.GetDB(), fs, req.DueDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to issue invoices"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Invoices issued",
		"issued":  issued,
	})
}

// UpdateAmountDueAPI applies an administrative edit to the amount due
func UpdateAmountDueAPI(c *fiber.Ctx, ledger *billing.Ledger) error {
	type AmountDueRequest struct {
		AmountDue decimal.Decimal `json:"amount_due"`
	}

	var req AmountDueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	userID := c.Locals("user_id").(string)
	invoice, err := ledger.UpdateAmountDue(c.Context(), c.Params("id"), req.AmountDue, &userID)
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": invoice})
}

// ReconcileInvoiceAPI recomputes an invoice's totals from its live payments
func ReconcileInvoiceAPI(c *fiber.Ctx, ledger *billing.Ledger) error {
	invoice, err := ledger.ReconcileInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return ledgerError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": invoice})
}

// DeleteInvoiceAPI soft-deletes an invoice without live payments
func DeleteInvoiceAPI(c *fiber.Ctx) error {
	invoiceID := c.Params("id")

	count, err := database.CountInvoicePayments(config.GetDB(), invoiceID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to check payments"})
	}
	if count > 0 {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"error":   "Invoice has recorded payments; delete them first",
		})
	}

	if err := database.DeleteInvoice(config.GetDB(), invoiceID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Invoice not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete invoice"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Invoice deleted"})
}

// ledgerError maps billing errors onto HTTP responses.
func ledgerError(c *fiber.Ctx, err error) error {
	var (
		invalidAmount *billing.InvalidAmountError
		overpayment   *billing.OverpaymentError
	)

	switch {
	case errors.Is(err, billing.ErrInvoiceNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Invoice not found"})
	case errors.As(err, &invalidAmount):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": invalidAmount.Error()})
	case errors.As(err, &overpayment):
		return c.Status(422).JSON(fiber.Map{"success": false, "error": overpayment.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Invoice operation failed"})
	}
}

func getFeeStructure(db *sql.DB, id string) (*models.FeeStructure, error) {
	fs := &models.FeeStructure{}
	query := `SELECT id, program_id, semester_id, name, amount, currency, is_active
			  FROM fee_structures
			  WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, id).Scan(
		&fs.ID, &fs.ProgramID, &fs.SemesterID, &fs.Name, &fs.Amount, &fs.Currency, &fs.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return fs, nil
}
