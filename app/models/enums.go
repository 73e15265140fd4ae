package models

// InvoiceStatus defines the settlement state of an invoice. It is always
// derived from amount_due vs amount_paid, never set independently.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
)

// PaymentMethod defines how a student payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCheque       PaymentMethod = "cheque"
	MethodCard         PaymentMethod = "card"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodMobileMoney, MethodCheque, MethodCard:
		return true
	}
	return false
}

// EnrollmentStatus defines the state of a course enrollment.
type EnrollmentStatus string

const (
	Enrolled  EnrollmentStatus = "enrolled"
	Dropped   EnrollmentStatus = "dropped"
	Completed EnrollmentStatus = "completed"
)

// DayOfWeek defines the days of the week for timetable slots.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// SalaryPeriod defines the period a staff salary amount covers.
type SalaryPeriod string

const (
	SalaryDay   SalaryPeriod = "day"
	SalaryWeek  SalaryPeriod = "week"
	SalaryMonth SalaryPeriod = "month"
)

// PayoutType defines what a staff payout covers.
type PayoutType string

const (
	PayoutBaseSalary PayoutType = "base_salary"
	PayoutAllowance  PayoutType = "allowance"
	PayoutCombined   PayoutType = "combined"
)
