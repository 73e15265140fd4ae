package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlphilWeb/AlphilSMS-sub003/app/validation"
)

func TestCreateStaffRequestValidation(t *testing.T) {
	valid := CreateStaffRequest{
		Email:     "bursar@alphil.ac.ug",
		Password:  "long-enough-pass",
		FirstName: "Grace",
		LastName:  "Nakato",
		StaffNo:   "STF-001",
		Position:  "Bursar",
		Role:      "Bursar",
	}
	assert.NoError(t, validation.Struct(&valid))

	// Role is optional, the handler defaults it to Staff.
	noRole := valid
	noRole.Role = ""
	assert.NoError(t, validation.Struct(&noRole))

	shortPassword := valid
	shortPassword.Password = "short"
	assert.Error(t, validation.Struct(&shortPassword))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, validation.Struct(&badEmail))

	unknownRole := valid
	unknownRole.Role = "Headmaster"
	assert.Error(t, validation.Struct(&unknownRole))
}
