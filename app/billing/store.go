package billing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// Store opens ledger transactions. The SQL implementation below is the real
// one; tests use an in-memory fake.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one ledger transaction. InvoiceForUpdate must take a row lock that
// serializes concurrent ledger operations on the same invoice; callers always
// acquire it before mutating payment rows.
type Tx interface {
	InvoiceForUpdate(ctx context.Context, invoiceID string) (*models.Invoice, error)
	Payment(ctx context.Context, paymentID string) (*models.Payment, error)
	InsertPayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, p *models.Payment) error
	SoftDeletePayment(ctx context.Context, paymentID string) error
	SumLivePayments(ctx context.Context, invoiceID string) (decimal.Decimal, error)
	UpdateInvoiceTotals(ctx context.Context, invoice *models.Invoice) error
	UpdateInvoiceDue(ctx context.Context, invoice *models.Invoice) error
	Commit() error
	Rollback() error
}

type sqlStore struct {
	db *sql.DB
}

// NewSQLStore wraps the shared *sql.DB in a ledger Store.
func NewSQLStore(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) InvoiceForUpdate(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv := &models.Invoice{}
	query := `SELECT id, student_id, semester_id, fee_structure_id, amount_due, amount_paid, balance,
			  status, currency, issued_date, due_date, created_at, updated_at
			  FROM invoices
			  WHERE id = $1 AND deleted_at IS NULL
			  FOR UPDATE`

	var status string
	err := t.tx.QueryRowContext(ctx, query, invoiceID).Scan(
		&inv.ID, &inv.StudentID, &inv.SemesterID, &inv.FeeStructureID,
		&inv.AmountDue, &inv.AmountPaid, &inv.Balance,
		&status, &inv.Currency, &inv.IssuedDate, &inv.DueDate,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, &TransactionError{Op: "select invoice", Err: err}
	}
	inv.Status = models.InvoiceStatus(status)
	return inv, nil
}

func (t *sqlTx) Payment(ctx context.Context, paymentID string) (*models.Payment, error) {
	p := &models.Payment{}
	query := `SELECT id, invoice_id, student_id, amount, method, transaction_date,
			  reference_number, recorded_by, notes, created_at, updated_at
			  FROM payments
			  WHERE id = $1 AND deleted_at IS NULL`

	var method string
	err := t.tx.QueryRowContext(ctx, query, paymentID).Scan(
		&p.ID, &p.InvoiceID, &p.StudentID, &p.Amount, &method, &p.TransactionDate,
		&p.ReferenceNumber, &p.RecordedBy, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, &TransactionError{Op: "select payment", Err: err}
	}
	p.Method = models.PaymentMethod(method)
	return p, nil
}

func (t *sqlTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	query := `INSERT INTO payments (invoice_id, student_id, amount, method, transaction_date,
			  reference_number, recorded_by, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, created_at, updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		p.InvoiceID, p.StudentID, p.Amount, string(p.Method), p.TransactionDate,
		p.ReferenceNumber, p.RecordedBy, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) && p.ReferenceNumber != nil {
			return &DuplicateReferenceError{Reference: *p.ReferenceNumber}
		}
		return &TransactionError{Op: "insert payment", Err: err}
	}
	return nil
}

func (t *sqlTx) UpdatePayment(ctx context.Context, p *models.Payment) error {
	query := `UPDATE payments
			  SET amount = $1, method = $2, transaction_date = $3, reference_number = $4,
			      notes = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`

	result, err := t.tx.ExecContext(ctx, query,
		p.Amount, string(p.Method), p.TransactionDate, p.ReferenceNumber, p.Notes, p.ID)
	if err != nil {
		if isUniqueViolation(err) && p.ReferenceNumber != nil {
			return &DuplicateReferenceError{Reference: *p.ReferenceNumber}
		}
		return &TransactionError{Op: "update payment", Err: err}
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (t *sqlTx) SoftDeletePayment(ctx context.Context, paymentID string) error {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE payments SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		paymentID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (t *sqlTx) SumLivePayments(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := t.tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1 AND deleted_at IS NULL`,
		invoiceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (t *sqlTx) UpdateInvoiceTotals(ctx context.Context, invoice *models.Invoice) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE invoices SET amount_paid = $1, balance = $2, status = $3, updated_at = NOW() WHERE id = $4`,
		invoice.AmountPaid, invoice.Balance, string(invoice.Status), invoice.ID)
	return err
}

func (t *sqlTx) UpdateInvoiceDue(ctx context.Context, invoice *models.Invoice) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE invoices SET amount_due = $1, amount_paid = $2, balance = $3, status = $4, updated_at = NOW() WHERE id = $5`,
		invoice.AmountDue, invoice.AmountPaid, invoice.Balance, string(invoice.Status), invoice.ID)
	return err
}

func (t *sqlTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
