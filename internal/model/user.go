package model

import "time"

// User is a blog user who can log in, write posts, and save favorites.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Serialize projects the user for transmission. PasswordHash is deliberately
// excluded; there is no input for which it appears in the output.
func (u *User) Serialize() map[string]any {
	return map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"is_active":  u.IsActive,
		"created_at": formatTime(u.CreatedAt),
		"updated_at": formatTimePtr(u.UpdatedAt),
	}
}

// serializeAuthor is the reduced author shape embedded in blog posts. It
// intentionally carries only display fields so post payloads never leak
// credentials or account internals.
func (u *User) serializeAuthor() map[string]any {
	return map[string]any{
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}
