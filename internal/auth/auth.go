// package auth implements the static credential allow-list and session tracking
package auth

import (
	"strings"
)

// Authenticator checks login attempts against the static email -> password
// table loaded from configuration. There is no signup, rotation, or hashing;
// the table is the complete set of permitted users.
type Authenticator struct {
	users map[string]string
}

// NewAuthenticator creates an Authenticator from a credential table.
func NewAuthenticator(users map[string]string) *Authenticator {
	if users == nil {
		users = map[string]string{}
	}
	return &Authenticator{users: users}
}

// Check reports whether the email/password pair is in the allow-list.
//
// The email is matched exactly, including case.
func (a *Authenticator) Check(email, password string) bool {
	stored, ok := a.users[email]
	return ok && stored == password
}

// ValidateEmail performs the basic shape check applied before authentication.
func ValidateEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".")
}

// DisplayName derives the display name from an email (the local part).
func DisplayName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
