package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// AuthService defines registration and login. Both return a signed token on
// success; the account's role at call time is embedded in it.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
}
