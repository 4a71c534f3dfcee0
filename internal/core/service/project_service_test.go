package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamops/teamops-api/internal/core/domain"
	"github.com/teamops/teamops-api/internal/core/ports"
)

func testIdentity(subject string) domain.Identity {
	now := time.Now().UTC()
	return domain.Identity{Subject: subject, Role: domain.RoleUser, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
}

func newTestProjectService() (*ProjectService, *stubProjectRepo, *stubTaskRepo, *stubProjectCache) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	cache := newStubProjectCache()
	return NewProjectService(projects, tasks, cache, zerolog.Nop()), projects, tasks, cache
}

func TestProjectService_Create_OwnerFixedToCaller(t *testing.T) {
	svc, _, _, cache := newTestProjectService()

	project, err := svc.Create(context.Background(), testIdentity("a@x.com"), ports.CreateProjectInput{Name: "P1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if project.OwnerSubject != "a@x.com" {
		t.Fatalf("expected owner a@x.com, got %q", project.OwnerSubject)
	}
	if project.ID == "" {
		t.Fatalf("expected generated id")
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected cache invalidation on create, got %d", cache.invalidations)
	}
}

func TestProjectService_Create_BlankName(t *testing.T) {
	svc, _, _, _ := newTestProjectService()

	_, err := svc.Create(context.Background(), testIdentity("a@x.com"), ports.CreateProjectInput{Name: "   "})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["name"]; !ok {
		t.Fatalf("expected name in field map: %+v", ve.Fields)
	}
}

func TestProjectService_CrossOwnerAccessIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestProjectService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testIdentity("a@x.com"), ports.CreateProjectInput{Name: "A's project"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := testIdentity("b@x.com")

	if _, err := svc.Get(ctx, other, created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("get: expected ErrProjectNotFound, got %v", err)
	}
	name := "stolen"
	if _, err := svc.Update(ctx, other, created.ID, ports.UpdateProjectInput{Name: &name}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("update: expected ErrProjectNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, other, created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("delete: expected ErrProjectNotFound, got %v", err)
	}

	// And B's list never contains A's project.
	list, err := svc.List(ctx, other)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list for b@x.com, got %d items", len(list))
	}
}

func TestProjectService_Update_Partial(t *testing.T) {
	svc, _, _, _ := newTestProjectService()
	ctx := context.Background()
	identity := testIdentity("a@x.com")

	created, err := svc.Create(ctx, identity, ports.CreateProjectInput{Name: "P1", Description: "original"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	desc := "updated description"
	updated, err := svc.Update(ctx, identity, created.ID, ports.UpdateProjectInput{Description: &desc})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "P1" {
		t.Fatalf("absent name must stay unchanged, got %q", updated.Name)
	}
	if updated.Description != desc {
		t.Fatalf("expected new description, got %q", updated.Description)
	}
}

func TestProjectService_Update_NoFields(t *testing.T) {
	svc, _, _, _ := newTestProjectService()
	ctx := context.Background()
	identity := testIdentity("a@x.com")

	created, err := svc.Create(ctx, identity, ports.CreateProjectInput{Name: "P1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(ctx, identity, created.ID, ports.UpdateProjectInput{})
	if !errors.Is(err, domain.ErrNoUpdatableFields) {
		t.Fatalf("expected ErrNoUpdatableFields, got %v", err)
	}
}

func TestProjectService_Delete_CascadesTasks(t *testing.T) {
	svc, _, tasks, _ := newTestProjectService()
	ctx := context.Background()
	identity := testIdentity("a@x.com")

	created, err := svc.Create(ctx, identity, ports.CreateProjectInput{Name: "P1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	now := time.Now().UTC()
	for _, id := range []string{"t1", "t2"} {
		_ = tasks.Create(ctx, &domain.Task{ID: id, ProjectID: created.ID, Title: "task", Status: domain.StatusTodo, OwnerSubject: "a@x.com", CreatedAt: now, UpdatedAt: now})
	}
	_ = tasks.Create(ctx, &domain.Task{ID: "other", ProjectID: "another-project", Title: "keep", Status: domain.StatusTodo, OwnerSubject: "a@x.com", CreatedAt: now, UpdatedAt: now})

	if err := svc.Delete(ctx, identity, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(tasks.tasks) != 1 {
		t.Fatalf("expected cascade to remove project tasks only, %d tasks left", len(tasks.tasks))
	}
	if _, ok := tasks.tasks["other"]; !ok {
		t.Fatalf("task of another project must survive the cascade")
	}
	if _, err := svc.Get(ctx, identity, created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected project gone, got %v", err)
	}
}

func TestProjectService_List_UsesCache(t *testing.T) {
	svc, repo, _, cache := newTestProjectService()
	ctx := context.Background()
	identity := testIdentity("a@x.com")

	cached := []domain.Project{{ID: "cached", Name: "From cache", OwnerSubject: "a@x.com"}}
	cache.hit["a@x.com"] = cached

	// Even with a different store state, the cached list wins until invalidated.
	now := time.Now().UTC()
	_ = repo.Create(ctx, &domain.Project{ID: "stored", Name: "From store", OwnerSubject: "a@x.com", CreatedAt: now, UpdatedAt: now})

	list, err := svc.List(ctx, identity)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "cached" {
		t.Fatalf("expected cache hit, got %+v", list)
	}
}
