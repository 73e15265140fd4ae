package billing

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// Ledger keeps an invoice's amount_paid, balance and status consistent with
// the sum of its live payments. Every mutating operation runs in one database
// transaction that locks the invoice row and recomputes the paid total from
// the payment rows themselves; no call path does incremental arithmetic on
// the stored totals.
type Ledger struct {
	store Store
	audit Auditor
	cache Invalidator
}

// Auditor records an action after a successful mutation. Implementations must
// be best-effort; failures are logged and swallowed.
type Auditor interface {
	Record(userID *string, action, targetTable, targetID, description string)
}

// Invalidator drops cached views after a successful mutation. Fire-and-forget.
type Invalidator interface {
	Invalidate(paths ...string)
}

// Option configures optional ledger collaborators.
type Option func(*Ledger)

// WithAuditor attaches an audit-log sink.
func WithAuditor(a Auditor) Option {
	return func(l *Ledger) { l.audit = a }
}

// WithInvalidator attaches a cache invalidation hook.
func WithInvalidator(c Invalidator) Option {
	return func(l *Ledger) { l.cache = c }
}

// NewLedger creates a Ledger backed by the given store.
func NewLedger(store Store, opts ...Option) *Ledger {
	l := &Ledger{store: store}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DeriveStatus is the single status rule applied after any amount change.
func DeriveStatus(amountDue, amountPaid decimal.Decimal) models.InvoiceStatus {
	balance := amountDue.Sub(amountPaid)
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		return models.InvoicePaid
	case amountPaid.GreaterThan(decimal.Zero):
		return models.InvoicePartial
	default:
		return models.InvoiceUnpaid
	}
}

// RecordPaymentInput carries the fields needed to record a payment.
type RecordPaymentInput struct {
	InvoiceID       string
	StudentID       string
	Amount          decimal.Decimal
	Method          models.PaymentMethod
	TransactionDate time.Time
	ReferenceNumber *string
	RecordedBy      *string
	Notes           string
}

// PaymentPatch carries the updatable fields of a payment. Nil fields are left
// unchanged. A patch without Amount never touches the invoice.
type PaymentPatch struct {
	Amount          *decimal.Decimal
	Method          *models.PaymentMethod
	TransactionDate *time.Time
	ReferenceNumber *string
	Notes           *string
	UpdatedBy       *string
}

// RecordPayment inserts a payment and reconciles its invoice atomically.
// It fails with OverpaymentError if the resulting paid total would exceed the
// amount due, and with IntegrityMismatchError if the student does not own the
// invoice.
func (l *Ledger) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, &InvalidAmountError{Amount: in.Amount, Reason: "amount must be greater than zero"}
	}
	if !models.ValidPaymentMethod(in.Method) {
		return nil, &InvalidAmountError{Amount: in.Amount, Reason: "unknown payment method " + string(in.Method)}
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	invoice, err := tx.InvoiceForUpdate(ctx, in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.StudentID != in.StudentID {
		return nil, &IntegrityMismatchError{
			InvoiceID:        invoice.ID,
			InvoiceStudentID: invoice.StudentID,
			PaymentStudentID: in.StudentID,
		}
	}

	alreadyPaid, err := tx.SumLivePayments(ctx, invoice.ID)
	if err != nil {
		return nil, &TransactionError{Op: "sum payments", Err: err}
	}
	newPaid := alreadyPaid.Add(in.Amount)
	if newPaid.GreaterThan(invoice.AmountDue) {
		return nil, &OverpaymentError{
			InvoiceID:   invoice.ID,
			AmountDue:   invoice.AmountDue,
			AlreadyPaid: alreadyPaid,
			Attempted:   in.Amount,
		}
	}

	txDate := in.TransactionDate
	if txDate.IsZero() {
		txDate = time.Now()
	}
	payment := &models.Payment{
		InvoiceID:       invoice.ID,
		StudentID:       invoice.StudentID,
		Amount:          in.Amount,
		Method:          in.Method,
		TransactionDate: txDate,
		ReferenceNumber: in.ReferenceNumber,
		RecordedBy:      in.RecordedBy,
		Notes:           in.Notes,
	}
	if err := tx.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}

	applyTotals(invoice, newPaid)
	if err := tx.UpdateInvoiceTotals(ctx, invoice); err != nil {
		return nil, &TransactionError{Op: "update invoice", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &TransactionError{Op: "commit", Err: err}
	}

	l.afterMutation(in.RecordedBy, "payment.record", payment.ID,
		"Recorded payment of "+in.Amount.StringFixed(2)+" on invoice "+invoice.ID, invoice)
	return payment, nil
}

// UpdatePayment patches a payment. When the amount changes, the invoice is
// re-reconciled in the same transaction with the same bounds checks as
// RecordPayment; metadata-only patches leave the invoice untouched.
func (l *Ledger) UpdatePayment(ctx context.Context, paymentID string, patch PaymentPatch) (*models.Payment, error) {
	if patch.Amount != nil && patch.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, &InvalidAmountError{Amount: *patch.Amount, Reason: "amount must be greater than zero"}
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	payment, err := tx.Payment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Lock the invoice before touching the payment row so concurrent ledger
	// operations on the same invoice serialize in one place.
	invoice, err := tx.InvoiceForUpdate(ctx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	amountChanged := patch.Amount != nil && !patch.Amount.Equal(payment.Amount)
	if patch.Amount != nil {
		payment.Amount = *patch.Amount
	}
	if patch.Method != nil {
		if !models.ValidPaymentMethod(*patch.Method) {
			return nil, &InvalidAmountError{Amount: payment.Amount, Reason: "unknown payment method " + string(*patch.Method)}
		}
		payment.Method = *patch.Method
	}
	if patch.TransactionDate != nil {
		payment.TransactionDate = *patch.TransactionDate
	}
	if patch.ReferenceNumber != nil {
		payment.ReferenceNumber = patch.ReferenceNumber
	}
	if patch.Notes != nil {
		payment.Notes = *patch.Notes
	}

	if err := tx.UpdatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if amountChanged {
		newPaid, err := tx.SumLivePayments(ctx, invoice.ID)
		if err != nil {
			return nil, &TransactionError{Op: "sum payments", Err: err}
		}
		if newPaid.GreaterThan(invoice.AmountDue) {
			return nil, &OverpaymentError{
				InvoiceID:   invoice.ID,
				AmountDue:   invoice.AmountDue,
				AlreadyPaid: newPaid.Sub(payment.Amount),
				Attempted:   payment.Amount,
			}
		}
		applyTotals(invoice, newPaid)
		if err := tx.UpdateInvoiceTotals(ctx, invoice); err != nil {
			return nil, &TransactionError{Op: "update invoice", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &TransactionError{Op: "commit", Err: err}
	}

	l.afterMutation(patch.UpdatedBy, "payment.update", payment.ID,
		"Updated payment on invoice "+invoice.ID, invoice)
	return payment, nil
}

// DeletePayment soft-deletes a payment and reconciles its invoice. The paid
// total is floored at zero as a defense against pre-existing drift.
func (l *Ledger) DeletePayment(ctx context.Context, paymentID string, deletedBy *string) error {
	tx, err := l.store.Begin(ctx)
	if err != nil {
		return &TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	payment, err := tx.Payment(ctx, paymentID)
	if err != nil {
		return err
	}
	invoice, err := tx.InvoiceForUpdate(ctx, payment.InvoiceID)
	if err != nil {
		return err
	}

	if err := tx.SoftDeletePayment(ctx, payment.ID); err != nil {
		return &TransactionError{Op: "delete payment", Err: err}
	}

	newPaid, err := tx.SumLivePayments(ctx, invoice.ID)
	if err != nil {
		return &TransactionError{Op: "sum payments", Err: err}
	}
	applyTotals(invoice, newPaid)
	if err := tx.UpdateInvoiceTotals(ctx, invoice); err != nil {
		return &TransactionError{Op: "update invoice", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &TransactionError{Op: "commit", Err: err}
	}

	l.afterMutation(deletedBy, "payment.delete", payment.ID,
		"Deleted payment of "+payment.Amount.StringFixed(2)+" from invoice "+invoice.ID, invoice)
	return nil
}

// ReconcileInvoice recomputes an invoice's totals from its live payments.
// This is the repair operation backing the three mutation paths; it is also
// exposed standalone so drifted invoices can be fixed administratively.
func (l *Ledger) ReconcileInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	invoice, err := tx.InvoiceForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	paid, err := tx.SumLivePayments(ctx, invoice.ID)
	if err != nil {
		return nil, &TransactionError{Op: "sum payments", Err: err}
	}
	applyTotals(invoice, paid)
	if err := tx.UpdateInvoiceTotals(ctx, invoice); err != nil {
		return nil, &TransactionError{Op: "update invoice", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, &TransactionError{Op: "commit", Err: err}
	}
	return invoice, nil
}

// UpdateAmountDue applies an administrative edit to an invoice's amount due
// and re-derives balance and status against the live payment total. Reducing
// the amount due below what is already paid is rejected so the paid total
// never exceeds the amount due.
func (l *Ledger) UpdateAmountDue(ctx context.Context, invoiceID string, amountDue decimal.Decimal, updatedBy *string) (*models.Invoice, error) {
	if amountDue.IsNegative() {
		return nil, &InvalidAmountError{Amount: amountDue, Reason: "amount due cannot be negative"}
	}

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return nil, &TransactionError{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	invoice, err := tx.InvoiceForUpdate(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	paid, err := tx.SumLivePayments(ctx, invoice.ID)
	if err != nil {
		return nil, &TransactionError{Op: "sum payments", Err: err}
	}
	if paid.GreaterThan(amountDue) {
		return nil, &OverpaymentError{
			InvoiceID:   invoice.ID,
			AmountDue:   amountDue,
			AlreadyPaid: paid,
			Attempted:   decimal.Zero,
		}
	}

	invoice.AmountDue = amountDue
	applyTotals(invoice, paid)
	if err := tx.UpdateInvoiceDue(ctx, invoice); err != nil {
		return nil, &TransactionError{Op: "update invoice", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, &TransactionError{Op: "commit", Err: err}
	}

	l.afterMutation(updatedBy, "invoice.amount_due", invoice.ID,
		"Set amount due to "+amountDue.StringFixed(2)+" on invoice "+invoice.ID, invoice)
	return invoice, nil
}

// applyTotals sets the derived fields on the invoice. paid below zero is
// floored; it indicates drift that the recompute is correcting.
func applyTotals(invoice *models.Invoice, paid decimal.Decimal) {
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	invoice.AmountPaid = paid
	invoice.Balance = invoice.AmountDue.Sub(paid)
	invoice.Status = DeriveStatus(invoice.AmountDue, paid)
}

// afterMutation runs the post-commit side effects. Neither may fail the
// already-committed ledger change.
func (l *Ledger) afterMutation(userID *string, action, paymentID, description string, invoice *models.Invoice) {
	if l.audit != nil {
		l.audit.Record(userID, action, "payments", paymentID, description)
	}
	if l.cache != nil {
		l.cache.Invalidate(
			"/api/invoices/"+invoice.ID,
			"/api/students/"+invoice.StudentID+"/invoices",
		)
	}
	log.Printf("%s: invoice %s now paid=%s balance=%s status=%s",
		action, invoice.ID, invoice.AmountPaid.StringFixed(2), invoice.Balance.StringFixed(2), invoice.Status)
}
