package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// AccountRepository defines the persistence interface for accounts.
// Create must fail with domain.ErrAccountExists when the subject is already
// taken; uniqueness is the store's responsibility (unique index).
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindBySubject(ctx context.Context, subject string) (*domain.Account, error)
}
