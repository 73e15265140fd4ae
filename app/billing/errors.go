package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvoiceNotFound is returned when the target invoice does not exist
	// or is deleted. Callers should treat their view as stale and refresh.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrPaymentNotFound is returned when the target payment does not exist
	// or is deleted.
	ErrPaymentNotFound = errors.New("payment not found")
)

// InvalidAmountError reports a payment amount that is zero, negative or
// otherwise unusable.
type InvalidAmountError struct {
	Amount decimal.Decimal
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid payment amount %s: %s", e.Amount.StringFixed(2), e.Reason)
}

// OverpaymentError reports a mutation that would push an invoice's paid total
// past its amount due.
type OverpaymentError struct {
	InvoiceID   string
	AmountDue   decimal.Decimal
	AlreadyPaid decimal.Decimal
	Attempted   decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s would exceed amount due %s (already paid %s) on invoice %s",
		e.Attempted.StringFixed(2), e.AmountDue.StringFixed(2), e.AlreadyPaid.StringFixed(2), e.InvoiceID)
}

// IntegrityMismatchError reports a payment whose student does not own the
// target invoice.
type IntegrityMismatchError struct {
	InvoiceID        string
	InvoiceStudentID string
	PaymentStudentID string
}

func (e *IntegrityMismatchError) Error() string {
	return fmt.Sprintf("student %s does not own invoice %s (owner %s)",
		e.PaymentStudentID, e.InvoiceID, e.InvoiceStudentID)
}

// DuplicateReferenceError reports a reference number that is already recorded.
// Reference uniqueness is the defense against accidental double submission.
type DuplicateReferenceError struct {
	Reference string
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("a payment with reference %q already exists", e.Reference)
}

// TransactionError wraps a persistence failure inside a ledger operation.
// Ledger mutations are never retried automatically; the caller must resubmit
// deliberately.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("billing: %s: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
