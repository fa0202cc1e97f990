package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findStatement(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" ") {
			return stmt
		}
	}
	t.Fatalf("no CREATE TABLE statement for %s", table)
	return ""
}

// Integritas ledger kursi sepenuhnya ditanggung DDL: constraint unik
// composite mencegah double booking, dan cascade membebaskan kursi saat
// booking atau screening dihapus. Perubahan schema yang menghilangkan
// salah satunya harus ketahuan di sini.
func TestSeatBookingsSchemaCarriesLedgerConstraints(t *testing.T) {
	stmt := findStatement(t, "seat_bookings")

	assert.Contains(t, stmt, "UNIQUE (screening_id, seat_id)")
	assert.Contains(t, stmt, "booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE")
	assert.Contains(t, stmt, "screening_id UUID NOT NULL REFERENCES screenings(id) ON DELETE CASCADE")
}

func TestBookingsSchemaCascadesFromScreenings(t *testing.T) {
	stmt := findStatement(t, "bookings")

	assert.Contains(t, stmt, "screening_id UUID NOT NULL REFERENCES screenings(id) ON DELETE CASCADE")
}

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range schemaStatements {
		require.True(t,
			strings.Contains(stmt, "IF NOT EXISTS"),
			"statement must be rerunnable: %s", stmt[:40])
	}
}
