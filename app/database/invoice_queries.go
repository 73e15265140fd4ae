package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IssueInvoice inserts a fresh invoice. Balance starts at the amount due and
// status at unpaid; the unique (student_id, semester_id) constraint rejects a
// second invoice for the same semester.
func IssueInvoice(db *sql.DB, inv *models.Invoice) error {
	query := `INSERT INTO invoices (student_id, semester_id, fee_structure_id, amount_due,
			  amount_paid, balance, status, currency, issued_date, due_date)
			  VALUES ($1, $2, $3, $4, 0, $4, 'unpaid', $5, NOW(), $6)
			  RETURNING id, issued_date, created_at, updated_at`

	return db.QueryRow(query,
		inv.StudentID, inv.SemesterID, inv.FeeStructureID, inv.AmountDue,
		inv.Currency, inv.DueDate,
	).Scan(&inv.ID, &inv.IssuedDate, &inv.CreatedAt, &inv.UpdatedAt)
}

// IssueInvoicesForProgram bulk-issues invoices from a fee structure to every
// active student of the program who has none for the semester yet. Returns
// how many were issued.
func IssueInvoicesForProgram(db *sql.DB, fs *models.FeeStructure, dueDate time.Time) (int, error) {
	query := `INSERT INTO invoices (student_id, semester_id, fee_structure_id, amount_due,
			  amount_paid, balance, status, currency, issued_date, due_date)
			  SELECT s.id, $1, $2, $3, 0, $3, 'unpaid', $4, NOW(), $5
			  FROM students s
			  WHERE s.program_id = $6 AND s.is_active = true AND s.deleted_at IS NULL
			  AND NOT EXISTS (
				  SELECT 1 FROM invoices i
				  WHERE i.student_id = s.id AND i.semester_id = $1 AND i.deleted_at IS NULL
			  )`

	result, err := db.Exec(query, fs.SemesterID, fs.ID, fs.Amount, fs.Currency, dueDate, fs.ProgramID)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// InvoiceFilters represents filtering options for invoice listings.
type InvoiceFilters struct {
	StudentID  string
	SemesterID string
	Status     string
	Overdue    bool
	Limit      int
	Offset     int
}

// GetInvoices returns invoices matching the filters with student display
// fields joined in.
func GetInvoices(db *sql.DB, filters InvoiceFilters) ([]*models.Invoice, error) {
	baseQuery := `SELECT i.id, i.student_id, i.semester_id, i.fee_structure_id, i.amount_due,
				  i.amount_paid, i.balance, i.status, i.currency, i.issued_date, i.due_date,
				  i.created_at, i.updated_at,
				  s.first_name, s.last_name, s.reg_no,
				  sem.name
				  FROM invoices i
				  JOIN students s ON i.student_id = s.id
				  JOIN semesters sem ON i.semester_id = sem.id
				  WHERE i.deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("i.student_id = $%d", argIndex))
		args = append(args, filters.StudentID)
		argIndex++
	}
	if filters.SemesterID != "" {
		conditions = append(conditions, fmt.Sprintf("i.semester_id = $%d", argIndex))
		args = append(args, filters.SemesterID)
		argIndex++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("i.status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.Overdue {
		conditions = append(conditions, "i.status != 'paid' AND i.due_date < NOW()")
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY i.issued_date DESC"
	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv := &models.Invoice{Student: &models.Student{}, Semester: &models.Semester{}}
		var status string
		err := rows.Scan(
			&inv.ID, &inv.StudentID, &inv.SemesterID, &inv.FeeStructureID, &inv.AmountDue,
			&inv.AmountPaid, &inv.Balance, &status, &inv.Currency, &inv.IssuedDate, &inv.DueDate,
			&inv.CreatedAt, &inv.UpdatedAt,
			&inv.Student.FirstName, &inv.Student.LastName, &inv.Student.RegNo,
			&inv.Semester.Name,
		)
		if err != nil {
			continue
		}
		inv.Status = models.InvoiceStatus(status)
		inv.Student.ID = inv.StudentID
		inv.Semester.ID = inv.SemesterID
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// GetInvoiceByID returns one invoice with its live payments.
func GetInvoiceByID(db *sql.DB, invoiceID string) (*models.Invoice, error) {
	inv := &models.Invoice{Student: &models.Student{}}
	query := `SELECT i.id, i.student_id, i.semester_id, i.fee_structure_id, i.amount_due,
			  i.amount_paid, i.balance, i.status, i.currency, i.issued_date, i.due_date,
			  i.created_at, i.updated_at,
			  s.first_name, s.last_name, s.reg_no
			  FROM invoices i
			  JOIN students s ON i.student_id = s.id
			  WHERE i.id = $1 AND i.deleted_at IS NULL`

	var status string
	err := db.QueryRow(query, invoiceID).Scan(
		&inv.ID, &inv.StudentID, &inv.SemesterID, &inv.FeeStructureID, &inv.AmountDue,
		&inv.AmountPaid, &inv.Balance, &status, &inv.Currency, &inv.IssuedDate, &inv.DueDate,
		&inv.CreatedAt, &inv.UpdatedAt,
		&inv.Student.FirstName, &inv.Student.LastName, &inv.Student.RegNo,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)
	inv.Student.ID = inv.StudentID

	payments, err := GetPaymentsByInvoice(db, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Payments = payments
	return inv, nil
}

// GetPaymentsByInvoice returns the live payments of an invoice, newest first.
func GetPaymentsByInvoice(db *sql.DB, invoiceID string) ([]*models.Payment, error) {
	query := `SELECT id, invoice_id, student_id, amount, method, transaction_date,
			  reference_number, recorded_by, notes, created_at, updated_at
			  FROM payments
			  WHERE invoice_id = $1 AND deleted_at IS NULL
			  ORDER BY transaction_date DESC`

	rows, err := db.Query(query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// GetPaymentsByStudent returns all live payments recorded for a student.
func GetPaymentsByStudent(db *sql.DB, studentID string) ([]*models.Payment, error) {
	query := `SELECT id, invoice_id, student_id, amount, method, transaction_date,
			  reference_number, recorded_by, notes, created_at, updated_at
			  FROM payments
			  WHERE student_id = $1 AND deleted_at IS NULL
			  ORDER BY transaction_date DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var method string
		err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.StudentID, &p.Amount, &method, &p.TransactionDate,
			&p.ReferenceNumber, &p.RecordedBy, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			continue
		}
		p.Method = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// InvoiceStats aggregates billing figures, optionally scoped to a semester.
type InvoiceStats struct {
	TotalInvoices    int             `json:"total_invoices"`
	PaidInvoices     int             `json:"paid_invoices"`
	PartialCount     int             `json:"partial_invoices"`
	UnpaidInvoices   int             `json:"unpaid_invoices"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OverdueCount     int             `json:"overdue_count"`
}

func GetInvoiceStats(db *sql.DB, semesterID string) (*InvoiceStats, error) {
	stats := &InvoiceStats{}
	query := `SELECT COUNT(*),
			  COUNT(*) FILTER (WHERE status = 'paid'),
			  COUNT(*) FILTER (WHERE status = 'partial'),
			  COUNT(*) FILTER (WHERE status = 'unpaid'),
			  COALESCE(SUM(amount_due), 0),
			  COALESCE(SUM(amount_paid), 0),
			  COALESCE(SUM(balance), 0),
			  COUNT(*) FILTER (WHERE status != 'paid' AND due_date < NOW())
			  FROM invoices
			  WHERE deleted_at IS NULL`

	var args []interface{}
	if semesterID != "" {
		query += " AND semester_id = $1"
		args = append(args, semesterID)
	}

	err := db.QueryRow(query, args...).Scan(
		&stats.TotalInvoices, &stats.PaidInvoices, &stats.PartialCount, &stats.UnpaidInvoices,
		&stats.TotalBilled, &stats.TotalCollected, &stats.TotalOutstanding, &stats.OverdueCount,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountInvoicePayments returns how many live payments reference an invoice.
// Invoice deletion is blocked while any exist.
func CountInvoicePayments(db *sql.DB, invoiceID string) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM payments WHERE invoice_id = $1 AND deleted_at IS NULL`,
		invoiceID).Scan(&count)
	return count, err
}

// DeleteInvoice soft-deletes an invoice that has no live payments.
func DeleteInvoice(db *sql.DB, invoiceID string) error {
	result, err := db.Exec(
		`UPDATE invoices SET deleted_at = NOW(), updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL
		 AND NOT EXISTS (
			 SELECT 1 FROM payments WHERE invoice_id = $1 AND deleted_at IS NULL
		 )`, invoiceID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
