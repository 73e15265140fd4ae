package payments

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
)

// RecordPaymentRequest is the payload for recording a payment.
type RecordPaymentRequest struct {
	InvoiceID       string          `json:"invoice_id"`
	StudentID       string          `json:"student_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	TransactionDate *time.Time      `json:"transaction_date,omitempty"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdatePaymentRequest carries the updatable payment fields. Absent fields
// are left unchanged.
type UpdatePaymentRequest struct {
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Method          *string          `json:"method,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
	ReferenceNumber *string          `json:"reference_number,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// GetPaymentsAPI lists payments filtered by invoice or student
func GetPaymentsAPI(c *fiber.Ctx) error {
	invoiceID := c.Query("invoice_id")
	studentID := c.Query("student_id")

	var (
		payments []*models.Payment
		err      error
	)
	switch {
	case invoiceID != "":
		payments, err = database.GetPaymentsByInvoice(config.GetDB(), invoiceID)
	case studentID != "":
		payments, err = database.GetPaymentsByStudent(config.GetDB(), studentID)
	default:
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "invoice_id or student_id query parameter is required",
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load payments"})
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}

// GetPaymentByIDAPI returns one payment
func GetPaymentByIDAPI(c *fiber.Ctx) error {
	payment, err := getPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load payment"})
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// RecordPaymentAPI records a payment against an invoice through the ledger
func RecordPaymentAPI(c *fiber.Ctx, ledger *billing.Ledger) error {
	var req RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.InvoiceID == "" || req.StudentID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "invoice_id and student_id are required"})
	}

	userID := c.Locals("user_id").(string)
	in := billing.RecordPaymentInput{
		InvoiceID:       req.InvoiceID,
		StudentID:       req.StudentID,
		Amount:          req.Amount,
		Method:          models.PaymentMethod(req.Method),
		ReferenceNumber: req.ReferenceNumber,
		RecordedBy:      &userID,
		Notes:           req.Notes,
	}
	if req.TransactionDate != nil {
		in.TransactionDate = *req.TransactionDate
	}

	payment, err := ledger.RecordPayment(c.Context(), in)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": payment})
}

// UpdatePaymentAPI patches a payment through the ledger
func UpdatePaymentAPI(c *fiber.Ctx, ledger *billing.Ledger) error {
	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	userID := c.Locals("user_id").(string)
	patch := billing.PaymentPatch{
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		UpdatedBy:       &userID,
	}
	if req.Method != nil {
		method := models.PaymentMethod(*req.Method)
		patch.Method = &method
	}

	payment, err := ledger.UpdatePayment(c.Context(), c.Params("id"), patch)
	if err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// DeletePaymentAPI soft-deletes a payment through the ledger
func DeletePaymentAPI(c *fiber.Ctx, ledger *billing.Ledger) error {
	userID := c.Locals("user_id").(string)

	if err := ledger.DeletePayment(c.Context(), c.Params("id"), &userID); err != nil {
		return ledgerError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Payment deleted"})
}

// ledgerError maps billing errors onto HTTP responses.
func ledgerError(c *fiber.Ctx, err error) error {
	var (
		invalidAmount *billing.InvalidAmountError
		overpayment   *billing.OverpaymentError
		mismatch      *billing.IntegrityMismatchError
		duplicate     *billing.DuplicateReferenceError
	)

	switch {
	case errors.Is(err, billing.ErrInvoiceNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Invoice not found"})
	case errors.Is(err, billing.ErrPaymentNotFound):
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Payment not found"})
	case errors.As(err, &invalidAmount):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": invalidAmount.Error()})
	case errors.As(err, &overpayment):
		return c.Status(422).JSON(fiber.Map{
			"success":      false,
			"error":        overpayment.Error(),
			"amount_due":   overpayment.AmountDue,
			"already_paid": overpayment.AlreadyPaid,
		})
	case errors.As(err, &mismatch):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": mismatch.Error()})
	case errors.As(err, &duplicate):
		return c.Status(409).JSON(fiber.Map{"success": false, "error": duplicate.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Payment operation failed"})
	}
}

func getPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT id, invoice_id, student_id, amount, method, transaction_date,
			  reference_number, recorded_by, notes, created_at, updated_at
			  FROM payments
			  WHERE id = $1 AND deleted_at IS NULL`

	var method string
	err := db.QueryRow(query, paymentID).Scan(
		&p.ID, &p.InvoiceID, &p.StudentID, &p.Amount, &method, &p.TransactionDate,
		&p.ReferenceNumber, &p.RecordedBy, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Method = models.PaymentMethod(method)
	return p, nil
}
