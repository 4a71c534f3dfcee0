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
	taskTitleMin = 2
	taskTitleMax = 200
)

// TaskService implements task CRUD under a project. The owning project is
// resolved and authorized before any task lookup, so a caller probing
// another owner's project gets project-not-found before task existence is
// even consulted.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, logger: logger}
}

// Create adds a task to a project the caller owns. Status defaults to TODO;
// the task's owner is fixed to the project's owner.
func (s *TaskService) Create(ctx context.Context, identity domain.Identity, projectID string, in ports.CreateTaskInput) (*domain.Task, error) {
	project, err := s.ownedProject(ctx, identity, projectID)
	if err != nil {
		return nil, err
	}

	if err := validateTaskTitle(in.Title); err != nil {
		return nil, err
	}
	status, err := domain.DefaultStatus(in.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:           uuid.NewString(),
		ProjectID:    project.ID,
		Title:        in.Title,
		Status:       status,
		DueAt:        in.DueAt,
		OwnerSubject: project.OwnerSubject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("project_id", projectID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID).Str("project_id", projectID).Str("status", string(status)).Msg("task created")
	return task, nil
}

// Get returns a task in a project the caller owns.
func (s *TaskService) Get(ctx context.Context, identity domain.Identity, projectID, id string) (*domain.Task, error) {
	if _, err := s.ownedProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.ownedTask(ctx, identity, projectID, id)
}

// List returns the project's tasks, newest first.
func (s *TaskService) List(ctx context.Context, identity domain.Identity, projectID string) ([]domain.Task, error) {
	if _, err := s.ownedProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

// Update applies a partial update: absent fields stay unchanged, a present
// but blank title is rejected, and status runs through normalization.
func (s *TaskService) Update(ctx context.Context, identity domain.Identity, projectID, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	if in.Title == nil && in.Status == nil && in.DueAt == nil {
		return nil, domain.ErrNoUpdatableFields
	}

	if _, err := s.ownedProject(ctx, identity, projectID); err != nil {
		return nil, err
	}
	task, err := s.ownedTask(ctx, identity, projectID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := validateTaskTitle(*in.Title); err != nil {
			return nil, err
		}
		task.Title = *in.Title
	}
	if in.Status != nil {
		status, err := domain.NormalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if in.DueAt != nil {
		task.DueAt = in.DueAt
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return task, nil
}

// Delete removes the task outright once project and task ownership are
// confirmed.
func (s *TaskService) Delete(ctx context.Context, identity domain.Identity, projectID, id string) error {
	if _, err := s.ownedProject(ctx, identity, projectID); err != nil {
		return err
	}
	if _, err := s.ownedTask(ctx, identity, projectID, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, projectID, id); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to delete task")
		return err
	}
	s.logger.Info().Str("task_id", id).Str("project_id", projectID).Msg("task deleted")
	return nil
}

func (s *TaskService) ownedProject(ctx context.Context, identity domain.Identity, projectID string) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(identity, project.OwnerSubject, domain.ErrProjectNotFound); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *TaskService) ownedTask(ctx context.Context, identity domain.Identity, projectID, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwner(identity, task.OwnerSubject, domain.ErrTaskNotFound); err != nil {
		return nil, err
	}
	return task, nil
}

func validateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.NewValidationError("title", "must not be blank")
	}
	if n := utf8.RuneCountInString(title); n < taskTitleMin || n > taskTitleMax {
		return domain.NewValidationError("title", "length must be between 2 and 200")
	}
	return nil
}
