// Package model defines the persisted record types and their
// serialization projections.
//
// Each record mirrors one table of the schema (see
// database/migrations) and exposes a Serialize method producing the
// plain key/value shape the collaborator layer sends over the wire.
// Serialization is pure: it only looks at the record's current state
// and whatever related rows the repository already loaded. A related
// row that was never loaded projects as an explicit null, never a
// partial object.
package model

import (
	"strings"
	"time"
)

// formatTime renders a timestamp as an ISO-8601 string, or nil for the zero
// value so unset datetimes serialize as explicit null.
func formatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// formatTimePtr is the pointer variant of formatTime.
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// strOrNil unwraps an optional text column for serialization.
func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// idOrNil unwraps an optional foreign key for serialization.
func idOrNil(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// splitTags converts the comma-joined tags column into a slice. Empty or
// unset tags become an empty slice, never nil, so the wire shape is always
// a sequence.
func splitTags(tags *string) []string {
	if tags == nil || *tags == "" {
		return []string{}
	}
	return strings.Split(*tags, ",")
}
