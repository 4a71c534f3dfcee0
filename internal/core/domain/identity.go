package domain

import "time"

// Identity is the authenticated principal derived from a verified token.
// It is constructed once per request by the identity middleware, threaded
// explicitly through handlers and services, and discarded with the request.
// The zero value is the anonymous identity.
type Identity struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated reports whether the identity belongs to a verified subject.
func (i Identity) Authenticated() bool {
	return i.Subject != ""
}

// HasRole reports whether the identity carries one of the given roles.
func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
