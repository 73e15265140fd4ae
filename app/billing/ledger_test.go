package billing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
)

// memStore is an in-memory Store. Begin takes the store lock for the life of
// the transaction, which models the row lock InvoiceForUpdate takes in the
// SQL implementation: ledger transactions on the store serialize.
type memStore struct {
	mu       sync.Mutex
	invoices map[string]*models.Invoice
	payments map[string]*models.Payment
	seq      int
}

func newMemStore() *memStore {
	return &memStore{
		invoices: make(map[string]*models.Invoice),
		payments: make(map[string]*models.Payment),
	}
}

func (s *memStore) Begin(ctx context.Context) (Tx, error) {
	s.mu.Lock()
	tx := &memTx{store: s}
	tx.stageInvoices = make(map[string]*models.Invoice, len(s.invoices))
	tx.stagePayments = make(map[string]*models.Payment, len(s.payments))
	for id, inv := range s.invoices {
		cp := *inv
		tx.stageInvoices[id] = &cp
	}
	for id, p := range s.payments {
		cp := *p
		tx.stagePayments[id] = &cp
	}
	return tx, nil
}

type memTx struct {
	store         *memStore
	stageInvoices map[string]*models.Invoice
	stagePayments map[string]*models.Payment
	done          bool
}

func (t *memTx) InvoiceForUpdate(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv, ok := t.stageInvoices[invoiceID]
	if !ok || inv.DeletedAt != nil {
		return nil, ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (t *memTx) Payment(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, ok := t.stagePayments[paymentID]
	if !ok || p.DeletedAt != nil {
		return nil, ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (t *memTx) InsertPayment(ctx context.Context, p *models.Payment) error {
	if p.ReferenceNumber != nil {
		for _, existing := range t.stagePayments {
			if existing.DeletedAt == nil && existing.ReferenceNumber != nil &&
				*existing.ReferenceNumber == *p.ReferenceNumber {
				return &DuplicateReferenceError{Reference: *p.ReferenceNumber}
			}
		}
	}
	t.store.seq++
	p.ID = fmt.Sprintf("pay-%d", t.store.seq)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	t.stagePayments[p.ID] = &cp
	return nil
}

func (t *memTx) UpdatePayment(ctx context.Context, p *models.Payment) error {
	existing, ok := t.stagePayments[p.ID]
	if !ok || existing.DeletedAt != nil {
		return ErrPaymentNotFound
	}
	cp := *p
	cp.UpdatedAt = time.Now()
	t.stagePayments[p.ID] = &cp
	return nil
}

func (t *memTx) SoftDeletePayment(ctx context.Context, paymentID string) error {
	p, ok := t.stagePayments[paymentID]
	if !ok || p.DeletedAt != nil {
		return ErrPaymentNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (t *memTx) SumLivePayments(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range t.stagePayments {
		if p.InvoiceID == invoiceID && p.DeletedAt == nil {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (t *memTx) UpdateInvoiceTotals(ctx context.Context, invoice *models.Invoice) error {
	existing, ok := t.stageInvoices[invoice.ID]
	if !ok {
		return ErrInvoiceNotFound
	}
	existing.AmountPaid = invoice.AmountPaid
	existing.Balance = invoice.Balance
	existing.Status = invoice.Status
	return nil
}

func (t *memTx) UpdateInvoiceDue(ctx context.Context, invoice *models.Invoice) error {
	existing, ok := t.stageInvoices[invoice.ID]
	if !ok {
		return ErrInvoiceNotFound
	}
	existing.AmountDue = invoice.AmountDue
	existing.AmountPaid = invoice.AmountPaid
	existing.Balance = invoice.Balance
	existing.Status = invoice.Status
	return nil
}

func (t *memTx) Commit() error {
	if t.done {
		return nil
	}
	t.store.invoices = t.stageInvoices
	t.store.payments = t.stagePayments
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// recorder captures audit and invalidation calls.
type recorder struct {
	mu      sync.Mutex
	actions []string
	paths   []string
}

func (r *recorder) Record(userID *string, action, targetTable, targetID, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *recorder) Invalidate(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedInvoice(store *memStore, id, studentID, due string) *models.Invoice {
	amountDue := dec(due)
	inv := &models.Invoice{
		ID:         id,
		StudentID:  studentID,
		SemesterID: "sem-1",
		AmountDue:  amountDue,
		AmountPaid: decimal.Zero,
		Balance:    amountDue,
		Status:     models.InvoiceUnpaid,
		Currency:   "UGX",
		IssuedDate: time.Now(),
		DueDate:    time.Now().AddDate(0, 1, 0),
	}
	store.invoices[id] = inv
	return inv
}

func invoiceState(t *testing.T, store *memStore, id string) *models.Invoice {
	t.Helper()
	inv, ok := store.invoices[id]
	require.True(t, ok, "invoice %s missing", id)
	return inv
}

// assertLedgerInvariants checks balance = due - paid, status derivation and
// that amount_paid equals the sum of live payments.
func assertLedgerInvariants(t *testing.T, store *memStore, invoiceID string) {
	t.Helper()
	inv := invoiceState(t, store, invoiceID)
	assert.True(t, inv.Balance.Equal(inv.AmountDue.Sub(inv.AmountPaid)),
		"balance %s != due %s - paid %s", inv.Balance, inv.AmountDue, inv.AmountPaid)
	assert.Equal(t, DeriveStatus(inv.AmountDue, inv.AmountPaid), inv.Status)

	sum := decimal.Zero
	for _, p := range store.payments {
		if p.InvoiceID == invoiceID && p.DeletedAt == nil {
			sum = sum.Add(p.Amount)
		}
	}
	assert.True(t, inv.AmountPaid.Equal(sum), "amount_paid %s != payment sum %s", inv.AmountPaid, sum)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name string
		due  string
		paid string
		want models.InvoiceStatus
	}{
		{"nothing paid", "1000.00", "0.00", models.InvoiceUnpaid},
		{"partially paid", "1000.00", "400.00", models.InvoicePartial},
		{"exactly paid", "1000.00", "1000.00", models.InvoicePaid},
		{"overpaid settles", "1000.00", "1000.01", models.InvoicePaid},
		{"zero due zero paid", "0.00", "0.00", models.InvoicePaid},
		{"tiny payment", "1000.00", "0.01", models.InvoicePartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(dec(tt.due), dec(tt.paid)))
		})
	}
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := &recorder{}
	ledger := NewLedger(store, WithAuditor(rec), WithInvalidator(rec))
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	// First payment takes the invoice to partial.
	p1, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1",
		StudentID: "stu-1",
		Amount:    dec("400.00"),
		Method:    models.MethodCash,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p1.ID)

	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("400.00")))
	assert.True(t, inv.Balance.Equal(dec("600.00")))
	assert.Equal(t, models.InvoicePartial, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")

	// Second payment settles it.
	_, err = ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1",
		StudentID: "stu-1",
		Amount:    dec("600.00"),
		Method:    models.MethodBankTransfer,
	})
	require.NoError(t, err)

	inv = invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("1000.00")))
	assert.True(t, inv.Balance.IsZero())
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")

	assert.Equal(t, []string{"payment.record", "payment.record"}, rec.actions)
	assert.Contains(t, rec.paths, "/api/invoices/inv-1")
}

func TestRecordPaymentOverpayment(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("1000.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Anything past the amount due is rejected and the invoice is untouched.
	_, err = ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("50.00"), Method: models.MethodCash,
	})
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.True(t, overErr.AmountDue.Equal(dec("1000.00")))
	assert.True(t, overErr.AlreadyPaid.Equal(dec("1000.00")))

	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("1000.00")))
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")
}

func TestRecordPaymentValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	t.Run("zero amount", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-1", Amount: decimal.Zero, Method: models.MethodCash,
		})
		var invErr *InvalidAmountError
		assert.ErrorAs(t, err, &invErr)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("-5.00"), Method: models.MethodCash,
		})
		var invErr *InvalidAmountError
		assert.ErrorAs(t, err, &invErr)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("10.00"), Method: "barter",
		})
		var invErr *InvalidAmountError
		assert.ErrorAs(t, err, &invErr)
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-404", StudentID: "stu-1", Amount: dec("10.00"), Method: models.MethodCash,
		})
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})

	t.Run("wrong student", func(t *testing.T) {
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-2", Amount: dec("10.00"), Method: models.MethodCash,
		})
		var mismatch *IntegrityMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "stu-1", mismatch.InvoiceStudentID)
		assert.Equal(t, "stu-2", mismatch.PaymentStudentID)
	})

	t.Run("duplicate reference", func(t *testing.T) {
		ref := "RCPT-001"
		_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("100.00"),
			Method: models.MethodCash, ReferenceNumber: &ref,
		})
		require.NoError(t, err)

		_, err = ledger.RecordPayment(ctx, RecordPaymentInput{
			InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("100.00"),
			Method: models.MethodCash, ReferenceNumber: &ref,
		})
		var dup *DuplicateReferenceError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, ref, dup.Reference)
		assertLedgerInvariants(t, store, "inv-1")
	})
}

func TestUpdatePaymentAmount(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	p, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("400.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Correcting the amount downward re-reconciles the invoice.
	newAmount := dec("250.00")
	updated, err := ledger.UpdatePayment(ctx, p.ID, PaymentPatch{Amount: &newAmount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(newAmount))

	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("250.00")))
	assert.True(t, inv.Balance.Equal(dec("750.00")))
	assert.Equal(t, models.InvoicePartial, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")
}

func TestUpdatePaymentMetadataOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	p, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("400.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)
	before := *invoiceState(t, store, "inv-1")

	method := models.MethodMobileMoney
	notes := "corrected channel"
	updated, err := ledger.UpdatePayment(ctx, p.ID, PaymentPatch{Method: &method, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.MethodMobileMoney, updated.Method)
	assert.Equal(t, notes, updated.Notes)

	after := invoiceState(t, store, "inv-1")
	assert.True(t, after.AmountPaid.Equal(before.AmountPaid))
	assert.True(t, after.Balance.Equal(before.Balance))
	assert.Equal(t, before.Status, after.Status)
}

func TestUpdatePaymentOverpayment(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	p, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("400.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)
	_, err = ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("500.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Raising the first payment to 600 would take the total to 1100.
	newAmount := dec("600.00")
	_, err = ledger.UpdatePayment(ctx, p.ID, PaymentPatch{Amount: &newAmount})
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)

	// Rejected update rolls back the payment row too.
	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("900.00")))
	assertLedgerInvariants(t, store, "inv-1")
}

func TestUpdatePaymentNotFound(t *testing.T) {
	store := newMemStore()
	ledger := NewLedger(store)
	amount := dec("10.00")
	_, err := ledger.UpdatePayment(context.Background(), "pay-404", PaymentPatch{Amount: &amount})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDeletePaymentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")
	before := *invoiceState(t, store, "inv-1")

	p, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("400.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Record then delete returns the invoice to its exact prior state.
	require.NoError(t, ledger.DeletePayment(ctx, p.ID, nil))

	after := invoiceState(t, store, "inv-1")
	assert.True(t, after.AmountPaid.Equal(before.AmountPaid))
	assert.True(t, after.Balance.Equal(before.Balance))
	assert.Equal(t, before.Status, after.Status)
	assertLedgerInvariants(t, store, "inv-1")

	// Deleting again is a not-found, not a double adjustment.
	err = ledger.DeletePayment(ctx, p.ID, nil)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestReconcileInvoiceRepairsDrift(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("300.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Simulate drift from a legacy incremental-update path.
	drifted := invoiceState(t, store, "inv-1")
	drifted.AmountPaid = dec("999.00")
	drifted.Balance = dec("1.00")
	drifted.Status = models.InvoicePaid

	inv, err := ledger.ReconcileInvoice(ctx, "inv-1")
	require.NoError(t, err)
	assert.True(t, inv.AmountPaid.Equal(dec("300.00")))
	assert.True(t, inv.Balance.Equal(dec("700.00")))
	assert.Equal(t, models.InvoicePartial, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")
}

func TestUpdateAmountDue(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("400.00"), Method: models.MethodCash,
	})
	require.NoError(t, err)

	// Raising the amount due reopens the balance.
	inv, err := ledger.UpdateAmountDue(ctx, "inv-1", dec("1200.00"), nil)
	require.NoError(t, err)
	assert.True(t, inv.AmountDue.Equal(dec("1200.00")))
	assert.True(t, inv.Balance.Equal(dec("800.00")))
	assert.Equal(t, models.InvoicePartial, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")

	// Dropping it to exactly the paid total settles the invoice.
	inv, err = ledger.UpdateAmountDue(ctx, "inv-1", dec("400.00"), nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.True(t, inv.Balance.IsZero())

	// Dropping below the paid total is rejected.
	_, err = ledger.UpdateAmountDue(ctx, "inv-1", dec("300.00"), nil)
	var overErr *OverpaymentError
	require.ErrorAs(t, err, &overErr)

	// Negative amounts are rejected outright.
	_, err = ledger.UpdateAmountDue(ctx, "inv-1", dec("-1.00"), nil)
	var invErr *InvalidAmountError
	require.ErrorAs(t, err, &invErr)
}

func TestConcurrentRecordPayments(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	// Two concurrent 500s fit exactly; both must commit, nothing
	// double-counted.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.RecordPayment(ctx, RecordPaymentInput{
				InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("500.00"), Method: models.MethodCash,
			})
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("1000.00")))
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")

	// A third 500 against the settled invoice must fail.
	_, err := ledger.RecordPayment(ctx, RecordPaymentInput{
		InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("500.00"), Method: models.MethodCash,
	})
	var overErr *OverpaymentError
	assert.ErrorAs(t, err, &overErr)
}

func TestConcurrentOverpaymentRace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ledger := NewLedger(store)
	seedInvoice(store, "inv-1", "stu-1", "1000.00")

	// Three concurrent 500s: exactly two fit, the third must get an
	// OverpaymentError, and the final total must equal the committed sum.
	const n = 3
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.RecordPayment(ctx, RecordPaymentInput{
				InvoiceID: "inv-1", StudentID: "stu-1", Amount: dec("500.00"), Method: models.MethodCash,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	overpayments := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var overErr *OverpaymentError
		require.ErrorAs(t, err, &overErr)
		overpayments++
	}
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, overpayments)

	inv := invoiceState(t, store, "inv-1")
	assert.True(t, inv.AmountPaid.Equal(dec("1000.00")))
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assertLedgerInvariants(t, store, "inv-1")
}
