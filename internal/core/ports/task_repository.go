package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// TaskRepository defines the persistence interface for tasks. Lookups are
// scoped to a project: a task id under the wrong project is absent.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, projectID, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, projectID, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}
