package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/starwars-blog/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     Code
	}{
		{"23505", UniqueViolation},
		{"23503", ForeignKeyViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"42P01", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := MapCode(tt.sqlstate); got != tt.want {
			t.Errorf("MapCode(%q) = %v, want %v", tt.sqlstate, got, tt.want)
		}
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table   string
		errType Code
		want    string
	}{
		{"users", UniqueViolation, "USER_ALREADY_EXISTS"},
		{"favorite_characters", UniqueViolation, "FAVORITE_CHARACTER_ALREADY_EXISTS"},
		{"blog_posts", ForeignKeyViolation, "BLOG_POST_NOT_FOUND"},
		{"characters", NotNullViolation, "CHARACTER_REQUIRED"},
		{"vehicles", CheckViolation, "VEHICLE_INVALID"},
		{"", UniqueViolation, "RECORD_ALREADY_EXISTS"},
	}

	for _, tt := range tests {
		if got := generateErrorCode(tt.table, tt.errType); got != tt.want {
			t.Errorf("generateErrorCode(%q, %v) = %q, want %q", tt.table, tt.errType, got, tt.want)
		}
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"unique_users_email", "email"},
		{"users_email_key", "email"},
		{"users_username_ukey", "username"},
		{"blog_posts_slug_key", "slug"},
		{"", ""},
		{"pk_users", ""},
	}

	for _, tt := range tests {
		if got := extractColumnForUniqueViolation(tt.constraint); got != tt.want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", httpErr.Status, http.StatusBadRequest)
	}
	if httpErr.Code != "USER_ALREADY_EXISTS" {
		t.Errorf("Code = %q, want %q", httpErr.Code, "USER_ALREADY_EXISTS")
	}
	if httpErr.Message != "A User with this Email already exists" {
		t.Errorf("Message = %q", httpErr.Message)
	}
	if !httpErr.Override {
		t.Error("unique violation messages should be override-safe")
	}
}

func TestHandleError_DuplicateFavorite(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "favorite_characters_user_id_character_id_key"`,
		TableName:      "favorite_characters",
		ConstraintName: "favorite_characters_user_id_character_id_key",
	})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Code != "FAVORITE_CHARACTER_ALREADY_EXISTS" {
		t.Errorf("Code = %q, want %q", httpErr.Code, "FAVORITE_CHARACTER_ALREADY_EXISTS")
	}
	if httpErr.Message != "This character is already in the user's favorites" {
		t.Errorf("Message = %q", httpErr.Message)
	}
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        `insert or update on table "characters" violates foreign key constraint`,
		TableName:      "characters",
		ColumnName:     "homeworld_id",
		ConstraintName: "characters_homeworld_id_fkey",
	})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", httpErr.Status, http.StatusBadRequest)
	}
	if httpErr.Message != "The referenced Homeworld does not exist" {
		t.Errorf("Message = %q", httpErr.Message)
	}
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		Message:    `null value in column "email" violates not-null constraint`,
		TableName:  "users",
		ColumnName: "email",
	})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "email" {
		t.Errorf("Errors = %+v, want one field error for email", httpErr.Errors)
	}
}

func TestHandleError_NoRows(t *testing.T) {
	wrapped := fmt.Errorf("table:planets: %w", pgx.ErrNoRows)

	err := HandleError(wrapped)

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", httpErr.Status, http.StatusNotFound)
	}
	if httpErr.Message != "Planet not found" {
		t.Errorf("Message = %q, want %q", httpErr.Message, "Planet not found")
	}
}

func TestHandleError_PassthroughAndFallback(t *testing.T) {
	already := errs.NewNotFoundError("Character not found", true, nil)
	if got := HandleError(already); got != already {
		t.Errorf("HandleError re-wrapped an existing HTTPError")
	}

	err := HandleError(errors.New("connection refused"))
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("HandleError returned %T, want *errs.HTTPError", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", httpErr.Status, http.StatusInternalServerError)
	}
}
