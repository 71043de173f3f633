package core

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMigrationsWellFormed validates that every migration carries an ID,
// description, and SQL.
func TestMigrationsWellFormed(t *testing.T) {
	ms := NewMigrationService(&Service{})
	migrations := ms.Migrations()

	assert.NotEmpty(t, migrations)
	seen := map[string]bool{}
	for _, m := range migrations {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.SQL)
		assert.False(t, seen[m.ID], "duplicate migration ID %s", m.ID)
		seen[m.ID] = true
	}
}

// TestMigrationsUniqueScopeIndex validates that the schema enforces one role
// per user and scope pair.
func TestMigrationsUniqueScopeIndex(t *testing.T) {
	sql := migrationSQL(t, "core-002")

	assert.Contains(t, sql, "UNIQUE INDEX")
	assert.Contains(t, sql, "(user_id, scope_type, scope_id)")
}

// TestMigrationsCoverModelColumns validates that every bun-mapped column of
// the store models exists in the DDL, so inserts and selects cannot hit a
// missing column.
func TestMigrationsCoverModelColumns(t *testing.T) {
	assignmentsSQL := migrationSQL(t, "core-001")
	for _, column := range bunColumns(t, RoleAssignment{}) {
		assert.Contains(t, assignmentsSQL, column, "role_assignments misses column %s", column)
	}

	auditSQL := migrationSQL(t, "core-003")
	for _, column := range bunColumns(t, RoleAuditLog{}) {
		assert.Contains(t, auditSQL, column, "role_audit_log misses column %s", column)
	}
}

func migrationSQL(t *testing.T, id string) string {
	t.Helper()
	for _, m := range NewMigrationService(&Service{}).Migrations() {
		if m.ID == id {
			return m.SQL
		}
	}
	t.Fatalf("migration %s not defined", id)
	return ""
}

// bunColumns extracts the column names a model maps through its bun tags.
func bunColumns(t *testing.T, model any) []string {
	t.Helper()
	var columns []string
	typ := reflect.TypeOf(model)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("bun")
		if tag == "" || field.Name == "BaseModel" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			columns = append(columns, name)
		}
	}
	return columns
}
