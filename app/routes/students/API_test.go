package students

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/models"
	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

func TestStudentPayloadValidation(t *testing.T) {
	email := "jane.doe@example.com"
	valid := models.Student{
		RegNo:      "ACS/2026/001",
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      &email,
		Gender:     models.Female,
		ProgramID:  "7f9c24e5-2f3a-4b4d-9d3e-5a6f7b8c9d0e",
		IntakeYear: 2026,
	}
	assert.NoError(t, validation.Struct(&valid))

	missingRegNo := valid
	missingRegNo.RegNo = ""
	assert.Error(t, validation.Struct(&missingRegNo))

	badProgram := valid
	badProgram.ProgramID = "not-a-uuid"
	assert.Error(t, validation.Struct(&badProgram))

	badEmail := "not-an-email"
	invalidEmail := valid
	invalidEmail.Email = &badEmail
	assert.Error(t, validation.Struct(&invalidEmail))

	// A create payload has no id yet; the database assigns it.
	assert.Empty(t, valid.ID)
	assert.NoError(t, validation.Struct(&valid))
}
