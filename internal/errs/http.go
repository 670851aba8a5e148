package errs

import "strings"

// FieldError describes a problem with a single input field, typically a
// column-level constraint failure (e.g. a missing required value).
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error shape surfaced to the request-handling collaborator.
//
// Fields:
//   - Code: machine-readable code, e.g. "USER_ALREADY_EXISTS".
//   - Message: human-readable message.
//   - Status: the HTTP status the collaborator should respond with.
//   - Override: whether the message is safe to show to end users verbatim.
//   - Errors: optional field-level details.
//
// HTTPError is serializable as-is, so the collaborator can use it directly
// as a JSON response body.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It matches on type only,
// so errors.Is(err, &HTTPError{}) answers "is this one of ours" without
// comparing codes or statuses.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with only Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// MakeUpperCaseWithUnderscores turns an HTTP status text into a stable code,
// e.g. "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
