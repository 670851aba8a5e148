package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/starwars-blog/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped Code for a given error, or Other when the error
// chain does not contain a *sqlerr.Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into a structured sqlerr.Error,
// mapping SQLSTATE and severity onto the package enums and keeping the
// constraint metadata.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds the machine code for a constraint failure.
//
// Format is <DOMAIN>_<ACTION>, where DOMAIN is the (crudely singularized)
// table name. Examples:
//
//	users + UniqueViolation              => USER_ALREADY_EXISTS
//	favorite_characters + UniqueViolation => FAVORITE_CHARACTER_ALREADY_EXISTS
//	blog_posts + ForeignKeyViolation      => BLOG_POST_NOT_FOUND
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// isFavoriteTable reports whether the table is one of the favorite junction
// tables, which get dedicated duplicate phrasing.
func isFavoriteTable(tableName string) bool {
	return strings.HasPrefix(tableName, "favorite_")
}

// formatUserFriendlyMessage produces the end-user-facing message for a
// structured database error.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// Duplicate rows in a favorite junction mean the same (user, entity)
		// pair was inserted twice; phrase that as a duplicate favorite
		// rather than a generic duplicate identifier.
		if isFavoriteTable(sqlErr.TableName) {
			target := humanizeText(strings.TrimPrefix(sqlErr.TableName, "favorite_"))
			if strings.HasSuffix(target, "s") && len(target) > 1 {
				target = target[:len(target)-1]
			}
			return fmt.Sprintf("This %s is already in the user's favorites", strings.ToLower(target))
		}
		// "identifier" is replaced by the offending column name in
		// HandleError when the constraint name reveals it.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name for messages.
//
// A column ending in "_id" is the most reliable signal for foreign keys
// ("homeworld_id" -> "Homeworld"); otherwise the singularized table name is
// used, falling back to "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the offending column from a unique
// constraint name. Two conventions are supported:
//
//  1. "unique_<table>_<column>"      e.g. unique_users_email -> "email"
//  2. "<table>_<column>_(key|ukey)"  e.g. users_email_key    -> "email"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	re := regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	matches := re.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application error.
//
// Mapping:
//   - *errs.HTTPError: returned unchanged (no double wrapping)
//   - pgconn.PgError constraint violations: errs.NewBadRequestError with a
//     machine code and end-user message
//   - pgx.ErrNoRows / sql.ErrNoRows: errs.NewNotFoundError
//   - anything else: errs.NewInternalServerError
//
// Repositories call this after every failed database operation.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			if !isFavoriteTable(sqlErr.TableName) {
				columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
				if columnName != "" {
					userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
				}
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		// Repositories annotate not-found errors with "table:<name>:" so the
		// message can name the missing entity.
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
