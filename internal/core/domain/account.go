package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Account models a registered user. Subject is the lower-cased email used as
// the principal name in tokens and as the ownership key on resources; it is
// unique and immutable after creation.
type Account struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	DisplayName    string    `json:"display_name"`
	CredentialHash string    `json:"-"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeSubject canonicalizes an email for use as a subject. Registration
// and login both pass through here so case variants collapse to one account.
func NormalizeSubject(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
