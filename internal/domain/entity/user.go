// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns job applications.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user, also used as the token subject.
	Username     string    // Unique handle, usable as a login identifier.
	Email        string    // Unique contact email, usable as a login identifier.
	PasswordHash string    // bcrypt digest. Never leaves the service layer.
	FirstName    string    // Optional.
	LastName     string    // Optional.
	Bio          string    // Optional free-form text.
	Location     string    // Optional free-form location.
	IsActive     bool      // Inactive accounts can neither log in nor resolve tokens.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// WithoutCredentials returns a copy of the user that is safe to hand to callers outside the service layer.
func (u *User) WithoutCredentials() *User {
	if u == nil {
		return nil
	}

	cloned := *u
	cloned.PasswordHash = ""

	return &cloned
}
