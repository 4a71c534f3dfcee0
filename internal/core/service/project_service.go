package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamops/teamops-api/internal/core/authz"
	"github.com/teamops/teamops-api/internal/core/domain"
	"github.com/teamops/teamops-api/internal/core/ports"
)

const (
	projectNameMin = 2
	projectNameMax = 160
	projectDescMax = 500
)

// ProjectService implements project CRUD with ownership scoping. Reads and
// mutations load the record and pass it through the ownership guard; lists
// are scoped in the storage query itself.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	cache    ports.ProjectCache
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, tasks ports.TaskRepository, cache ports.ProjectCache, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, cache: cache, logger: logger}
}

// Create persists a new project owned by the caller. The owner cannot be
// supplied and never changes afterwards.
func (s *ProjectService) Create(ctx context.Context, identity domain.Identity, in ports.CreateProjectInput) (*domain.Project, error) {
	if err := validateProjectFields(in.Name, &in.Description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		OwnerSubject: identity.Subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("owner", identity.Subject).Msg("failed to create project")
		return nil, err
	}
	s.invalidateCache(ctx, identity.Subject)

	s.logger.Info().Str("project_id", project.ID).Str("owner", identity.Subject).Msg("project created")
	return project, nil
}

// Get returns the project when the caller owns it; otherwise it is absent.
func (s *ProjectService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Project, error) {
	return s.ownedProject(ctx, identity, id)
}

// List returns the caller's projects, newest first, consulting the per-owner
// cache first. Cache failures degrade to a storage read.
func (s *ProjectService) List(ctx context.Context, identity domain.Identity) ([]domain.Project, error) {
	if s.cache != nil {
		cached, err := s.cache.GetList(ctx, identity.Subject)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner", identity.Subject).Msg("project cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	projects, err := s.projects.ListByOwner(ctx, identity.Subject)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, identity.Subject, projects); err != nil {
			s.logger.Warn().Err(err).Str("owner", identity.Subject).Msg("project cache write failed")
		}
	}
	return projects, nil
}

// Update applies a partial update. Only fields present in the request change;
// a request with no recognized fields fails with domain.ErrNoUpdatableFields.
func (s *ProjectService) Update(ctx context.Context, identity domain.Identity, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	if in.Name == nil && in.Description == nil {
		return nil, domain.ErrNoUpdatableFields
	}

	project, err := s.ownedProject(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validateProjectFields(*in.Name, nil); err != nil {
			return nil, err
		}
		project.Name = *in.Name
	}
	if in.Description != nil {
		if err := validateProjectDescription(*in.Description); err != nil {
			return nil, err
		}
		project.Description = *in.Description
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to update project")
		return nil, err
	}
	s.invalidateCache(ctx, identity.Subject)
	return project, nil
}

// Delete removes the project and all of its tasks once ownership is
// confirmed. The cascade keeps no orphaned tasks behind.
func (s *ProjectService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	project, err := s.ownedProject(ctx, identity, id)
	if err != nil {
		return err
	}

	if err := s.tasks.DeleteByProject(ctx, project.ID); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to delete project tasks")
		return err
	}
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to delete project")
		return err
	}
	s.invalidateCache(ctx, identity.Subject)

	s.logger.Info().Str("project_id", id).Str("owner", identity.Subject).Msg("project deleted")
	return nil
}

// ownedProject loads a project and authorizes the caller against its owner.
// A missing record and a record owned by someone else are indistinguishable.
func (s *ProjectService) ownedProject(ctx context.Context, identity domain.Identity, id string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(identity, project.OwnerSubject, domain.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) invalidateCache(ctx context.Context, ownerSubject string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerSubject); err != nil {
		s.logger.Warn().Err(err).Str("owner", ownerSubject).Msg("project cache invalidation failed")
	}
}

func validateProjectFields(name string, description *string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "must not be blank")
	}
	if n := utf8.RuneCountInString(name); n < projectNameMin || n > projectNameMax {
		return domain.NewValidationError("name", "length must be between 2 and 160")
	}
	if description != nil {
		return validateProjectDescription(*description)
	}
	return nil
}

func validateProjectDescription(description string) error {
	if utf8.RuneCountInString(description) > projectDescMax {
		return domain.NewValidationError("description", "length must be at most 500")
	}
	return nil
}
