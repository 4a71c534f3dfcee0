package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// ProjectRepository defines the persistence interface for projects.
// FindByID loads regardless of owner — the ownership decision is made by the
// service; ListByOwner is scoped in the query itself so other owners' data
// never leaves the store.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerSubject string) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}
