package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE integrity constraint violations.
const (
	notNullViolation    = "23502"
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// sqlState extracts the SQLSTATE and constraint name from pgx and lib/pq errors.
func sqlState(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := sqlState(err)
	return code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	code, _ := sqlState(err)
	return code == foreignKeyViolation
}

// isIntegrityViolation reports rows the schema refused: CHECK, NOT NULL or FK.
func isIntegrityViolation(err error) bool {
	code, _ := sqlState(err)
	switch code {
	case notNullViolation, foreignKeyViolation, checkViolation:
		return true
	}
	return false
}
