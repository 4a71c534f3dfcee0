package ports

import (
	"context"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// ProjectCache caches an owner's project list. A (nil, nil) result is a
// miss. Implementations are best-effort: callers treat errors as misses.
type ProjectCache interface {
	GetList(ctx context.Context, ownerSubject string) ([]domain.Project, error)
	SetList(ctx context.Context, ownerSubject string, projects []domain.Project) error
	Invalidate(ctx context.Context, ownerSubject string) error
}
