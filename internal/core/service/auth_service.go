package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamops/teamops-api/internal/core/domain"
	"github.com/teamops/teamops-api/internal/core/ports"
	"github.com/teamops/teamops-api/internal/core/token"
)

// AuthService implements registration and login on top of the account store
// and the token codec.
type AuthService struct {
	accounts ports.AccountRepository
	codec    *token.Codec
}

func NewAuthService(accounts ports.AccountRepository, codec *token.Codec) *AuthService {
	return &AuthService{accounts: accounts, codec: codec}
}

// Register creates an account with role USER and returns a freshly issued
// token for it. The subject is the lower-cased email; a duplicate in any
// case variant fails with domain.ErrAccountExists and leaves the original
// account untouched.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.Account, error) {
	subject := domain.NormalizeSubject(in.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:             uuid.NewString(),
		Subject:        subject,
		DisplayName:    in.DisplayName,
		CredentialHash: string(hash),
		Role:           domain.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.codec.Issue(created.Subject, created.Role, now)
	if err != nil {
		return "", nil, err
	}
	return tkn, created, nil
}

// Login verifies the presented secret and issues a token embedding the
// account's current role. An unknown subject and a wrong secret both fail
// with domain.ErrInvalidCredentials so a caller cannot probe which case
// occurred. A later role change does not touch tokens already issued; they
// carry the old role until they expire and are reissued.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	subject := domain.NormalizeSubject(email)

	account, err := s.accounts.FindBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Issue(account.Subject, account.Role, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}
	return tkn, account, nil
}
