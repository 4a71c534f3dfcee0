// Package authz holds the per-record ownership decision used by every
// resource service. It is pure: no I/O, no shared state.
package authz

import "github.com/teamops/teamops-api/internal/core/domain"

// RequireOwner permits the operation only when the authenticated subject is
// the record's owner. On mismatch it returns absent — the same error the
// caller uses for a record that does not exist — so a caller can never learn
// that a record exists under someone else's ownership.
func RequireOwner(identity domain.Identity, ownerSubject string, absent error) error {
	if !identity.Authenticated() || identity.Subject != ownerSubject {
		return absent
	}
	return nil
}
