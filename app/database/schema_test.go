package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadSchema(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("../../schema.sql")
	require.NoError(t, err, "schema.sql must be present at the repo root")
	return string(content)
}

func tableDef(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "schema.sql must define %s", table)
	end := strings.Index(schema[start:], ");")
	require.NotEqual(t, -1, end)
	return schema[start : start+end]
}

// GetUserRoles and AssignUserRole filter on user_roles.deleted_at, so a
// database bootstrapped from schema.sql must carry that column or every
// login fails.
func TestSchemaUserRolesSupportsSoftDelete(t *testing.T) {
	schema := loadSchema(t)
	def := tableDef(t, schema, "user_roles")

	require.Contains(t, def, "deleted_at")
	require.Contains(t, def, "created_at")
	require.Contains(t, def, "updated_at")
}

// Dropping an enrollment soft-deletes it; uniqueness must only apply to
// live rows so the student can re-enroll the same semester.
func TestSchemaEnrollmentUniquenessIgnoresDeleted(t *testing.T) {
	schema := loadSchema(t)
	def := tableDef(t, schema, "enrollments")

	require.NotContains(t, def, "UNIQUE (student_id, course_id, semester_id)")

	idx := strings.Index(schema, "enrollments_student_course_semester_key")
	require.NotEqual(t, -1, idx)
	require.Contains(t, schema[idx:], "WHERE deleted_at IS NULL")
}

// Same rule for payment reference numbers: a voided payment frees its
// reference for re-entry.
func TestSchemaPaymentReferenceUniquenessIgnoresDeleted(t *testing.T) {
	schema := loadSchema(t)

	idx := strings.Index(schema, "payments_reference_number_key")
	require.NotEqual(t, -1, idx)
	require.Contains(t, schema[idx:idx+200], "WHERE reference_number IS NOT NULL AND deleted_at IS NULL")
}
