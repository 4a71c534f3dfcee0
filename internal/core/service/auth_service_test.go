package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/teamops/teamops-api/internal/core/domain"
	"github.com/teamops/teamops-api/internal/core/ports"
	"github.com/teamops/teamops-api/internal/core/token"
)

func registerInput(email, password, displayName string) ports.RegisterInput {
	return ports.RegisterInput{Email: email, Password: password, DisplayName: displayName}
}

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Subject]; exists {
		return nil, domain.ErrAccountExists
	}
	r.accounts[account.Subject] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) FindBySubject(_ context.Context, subject string) (*domain.Account, error) {
	a, ok := r.accounts[subject]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func newTestAuthService(repo *stubAccountRepo) (*AuthService, *token.Codec) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	return NewAuthService(repo, codec), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc, codec := newTestAuthService(repo)

	tkn, account, err := svc.Register(context.Background(), registerInput("Alice@Example.com", "password123", "Alice"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.Subject != "alice@example.com" {
		t.Fatalf("expected normalized subject, got %q", account.Subject)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %q", account.Role)
	}
	if account.CredentialHash == "password123" {
		t.Fatalf("expected secret to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match secret: %v", err)
	}

	claims, err := codec.Verify(tkn, time.Now().UTC())
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Subject != "alice@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_DuplicateAnyCase(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("bob@example.com", "password123", "Bob")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	first := cloneAccount(repo.accounts["bob@example.com"])

	_, _, err := svc.Register(context.Background(), registerInput("BOB@Example.COM", "different456", "Bobby"))
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}

	// The original account is untouched by the failed attempt.
	after := repo.accounts["bob@example.com"]
	if after.DisplayName != first.DisplayName || after.CredentialHash != first.CredentialHash {
		t.Fatalf("first account mutated by duplicate register")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc, codec := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("carol@example.com", "s3cret-pw", "Carol")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tkn, account, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if account.Subject != "carol@example.com" {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims, err := codec.Verify(tkn, time.Now().UTC())
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("expected role USER in claims, got %q", claims.Role)
	}
}

func TestAuthService_Login_UnknownAndWrongSecretIndistinguishable(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("dave@example.com", "goodpass1", "Dave")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever1")
	_, _, wrongErr := svc.Login(context.Background(), "dave@example.com", "badpass99")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown subject: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong secret: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("errors must be identical: %q vs %q", unknownErr, wrongErr)
	}
}

// A role change on the account does not retroactively affect already-issued
// tokens; they carry the old role until expiry forces a reissue.
func TestAuthService_RoleChangeDoesNotAffectIssuedTokens(t *testing.T) {
	repo := newStubAccountRepo()
	svc, codec := newTestAuthService(repo)

	if _, _, err := svc.Register(context.Background(), registerInput("erin@example.com", "password123", "Erin")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldToken, _, err := svc.Login(context.Background(), "erin@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	repo.accounts["erin@example.com"].Role = domain.RoleAdmin

	claims, err := codec.Verify(oldToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("old token invalid: %v", err)
	}
	if claims.Role != domain.RoleUser {
		t.Fatalf("old token must keep role USER, got %q", claims.Role)
	}

	newToken, _, err := svc.Login(context.Background(), "erin@example.com", "password123")
	if err != nil {
		t.Fatalf("relogin failed: %v", err)
	}
	claims, err = codec.Verify(newToken, time.Now().UTC())
	if err != nil {
		t.Fatalf("new token invalid: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("reissued token must carry role ADMIN, got %q", claims.Role)
	}
}
