package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// CreateProjectInput carries the fields a caller may set on a new project.
// The owner is never part of the input; it is fixed to the caller's subject.
type CreateProjectInput struct {
	Name        string
	Description string
}

// UpdateProjectInput carries a partial update. Nil means the field was absent
// from the request and stays unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService defines use-case operations for projects. Every operation
// takes the caller's identity and reports records the caller does not own as
// absent.
type ProjectService interface {
	Create(ctx context.Context, identity domain.Identity, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.Project, error)
	List(ctx context.Context, identity domain.Identity) ([]domain.Project, error)
	Update(ctx context.Context, identity domain.Identity, id string, in UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}
