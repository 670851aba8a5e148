// Package errs defines the application error types shared by every layer.
//
// The data layer never hands raw driver errors to its callers. It produces
// *errs.HTTPError values carrying a stable machine-readable code, a
// human-readable message, and an HTTP status that the request-handling
// collaborator can map directly onto a response.
package errs
