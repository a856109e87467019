package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSQLState(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		integrity  bool
	}{
		{name: "pgx check", err: &pgconn.PgError{Code: checkViolation, ConstraintName: "bands_year_formed_check"}, integrity: true},
		{name: "pgx unique wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation}), unique: true},
		{name: "pq foreign key", err: &pq.Error{Code: foreignKeyViolation}, foreignKey: true, integrity: true},
		{name: "pq not null", err: &pq.Error{Code: notNullViolation}, integrity: true},
		{name: "plain error", err: errors.New("connection reset")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyViolation(tt.err))
			assert.Equal(t, tt.integrity, isIntegrityViolation(tt.err))
		})
	}

	_, constraint := sqlState(&pgconn.PgError{Code: checkViolation, ConstraintName: "bands_genre_check"})
	assert.Equal(t, "bands_genre_check", constraint)
}
