package invoices

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

func TestIssueInvoiceRequestValidation(t *testing.T) {
	valid := IssueInvoiceRequest{
		StudentID:  "7f9c24e5-2f3a-4b4d-9d3e-5a6f7b8c9d0e",
		SemesterID: "0b7a1c2d-3e4f-4a5b-8c9d-0e1f2a3b4c5d",
		Currency:   "UGX",
	}
	assert.NoError(t, validation.Struct(&valid))

	missingSemester := valid
	missingSemester.SemesterID = ""
	assert.Error(t, validation.Struct(&missingSemester))

	badStudent := valid
	badStudent.StudentID = "not-a-uuid"
	assert.Error(t, validation.Struct(&badStudent))

	badCurrency := valid
	badCurrency.Currency = "SHILLINGS"
	assert.Error(t, validation.Struct(&badCurrency))
}
