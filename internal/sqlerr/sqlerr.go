// Package sqlerr translates database driver errors into application errors.
//
// Postgres reports constraint failures as SQLSTATE codes on pgconn.PgError.
// This package maps those codes into a small taxonomy (unique violation,
// foreign key violation, not-null violation, check violation) and converts
// them into errs values with stable machine codes and messages the
// collaborator layer can surface directly. Duplicate favorites, duplicate
// usernames and dangling foreign keys all arrive here as raw SQLSTATEs and
// leave as typed errors.
package sqlerr

import "github.com/jackc/pgx/v5/pgconn"

// Code classifies a database error into the categories the data layer
// cares about.
type Code int

const (
	// Other covers every SQLSTATE the taxonomy does not single out.
	Other Code = iota

	// UniqueViolation maps SQLSTATE 23505 (duplicate key).
	UniqueViolation

	// ForeignKeyViolation maps SQLSTATE 23503 (referenced row missing).
	ForeignKeyViolation

	// NotNullViolation maps SQLSTATE 23502 (required column absent).
	NotNullViolation

	// CheckViolation maps SQLSTATE 23514 (check constraint failed).
	CheckViolation
)

// Severity mirrors the Postgres severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
)

// Error is the structured form of a Postgres server error. It keeps the
// original SQLSTATE and constraint metadata so callers can build precise
// messages, and wraps the driver error for errors.Is/As chains.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr *pgconn.PgError
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error.
func (e *Error) Unwrap() error {
	if e.driverErr == nil {
		return nil
	}
	return e.driverErr
}

// MapCode converts a SQLSTATE string into a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// MapSeverity converts the Postgres severity string into a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}
