package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTimeFormat(t *testing.T) {
	assert.True(t, ValidateTimeFormat("08:00"))
	assert.True(t, ValidateTimeFormat("17:30"))
	assert.False(t, ValidateTimeFormat("8:00"))
	assert.False(t, ValidateTimeFormat("0800"))
	assert.False(t, ValidateTimeFormat(""))
}

func TestValidateDayOfWeek(t *testing.T) {
	assert.True(t, ValidateDayOfWeek("monday"))
	assert.True(t, ValidateDayOfWeek("Friday"))
	assert.False(t, ValidateDayOfWeek("funday"))
	assert.False(t, ValidateDayOfWeek(""))
}

func TestNormalizeDay(t *testing.T) {
	// Mixed-case days pass validation, so conflict lookups and stored rows
	// must agree on one casing.
	assert.Equal(t, "friday", NormalizeDay("Friday"))
	assert.Equal(t, "friday", NormalizeDay("FRIDAY"))
	assert.Equal(t, "friday", NormalizeDay("friday"))
	assert.True(t, ValidateDayOfWeek(NormalizeDay("Friday")))
}

func TestValidateEntry(t *testing.T) {
	valid := EntryRequest{
		CourseID:   "c1",
		LecturerID: "l1",
		SemesterID: "s1",
		Day:        "monday",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Room:       "LT1",
	}
	assert.Empty(t, validateEntry(&valid))

	missing := valid
	missing.CourseID = ""
	assert.NotEmpty(t, validateEntry(&missing))

	badDay := valid
	badDay.Day = "someday"
	assert.NotEmpty(t, validateEntry(&badDay))

	inverted := valid
	inverted.StartTime, inverted.EndTime = "11:00", "09:00"
	assert.NotEmpty(t, validateEntry(&inverted))
}
