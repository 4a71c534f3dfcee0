package service

import (
	"context"
	"sort"

	"github.com/teamops/teamops-api/internal/core/domain"
)

// In-memory repositories shared by the project and task service tests.

type stubProjectRepo struct {
	projects map[string]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) ListByOwner(_ context.Context, ownerSubject string) ([]domain.Project, error) {
	out := make([]domain.Project, 0)
	for _, p := range r.projects {
		if p.OwnerSubject == ownerSubject {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type stubTaskRepo struct {
	tasks map[string]*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, projectID, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok || t.ProjectID != projectID {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	out := make([]domain.Task, 0)
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	existing, ok := r.tasks[t.ID]
	if !ok || existing.ProjectID != t.ProjectID {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, projectID, id string) error {
	existing, ok := r.tasks[id]
	if !ok || existing.ProjectID != projectID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, t := range r.tasks {
		if t.ProjectID == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

// stubProjectCache records cache traffic and can serve a canned hit.
type stubProjectCache struct {
	hit           map[string][]domain.Project
	sets          int
	invalidations int
}

func newStubProjectCache() *stubProjectCache {
	return &stubProjectCache{hit: make(map[string][]domain.Project)}
}

func (c *stubProjectCache) GetList(_ context.Context, ownerSubject string) ([]domain.Project, error) {
	return c.hit[ownerSubject], nil
}

func (c *stubProjectCache) SetList(_ context.Context, ownerSubject string, projects []domain.Project) error {
	c.sets++
	return nil
}

func (c *stubProjectCache) Invalidate(_ context.Context, ownerSubject string) error {
	c.invalidations++
	delete(c.hit, ownerSubject)
	return nil
}
