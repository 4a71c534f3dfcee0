package ports

import (
	"context"
	"time"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// CreateTaskInput carries the fields a caller may set on a new task.
// Status is optional and defaults to TODO.
type CreateTaskInput struct {
	Title  string
	Status string
	DueAt  *time.Time
}

// UpdateTaskInput carries a partial update. Nil means the field was absent
// from the request and stays unchanged.
type UpdateTaskInput struct {
	Title  *string
	Status *string
	DueAt  *time.Time
}

// TaskService defines use-case operations for tasks. The owning project is
// resolved and authorized before any task is touched, so a project the
// caller does not own yields project-not-found regardless of the task id.
type TaskService interface {
	Create(ctx context.Context, identity domain.Identity, projectID string, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, identity domain.Identity, projectID, id string) (*domain.Task, error)
	List(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, identity domain.Identity, projectID, id string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, identity domain.Identity, projectID, id string) error
}
