package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamops/teamops-api/internal/api/metrics"
	"github.com/teamops/teamops-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations under a project.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title  string     `json:"title"  validate:"required,min=2,max=200"`
	Status string     `json:"status" validate:"max=30"`
	DueAt  *time.Time `json:"due_at"`
}

// updateTaskRequest is a partial update: nil fields were absent from the
// request body and stay unchanged.
type updateTaskRequest struct {
	Title  *string    `json:"title"`
	Status *string    `json:"status"`
	DueAt  *time.Time `json:"due_at"`
}

// List handles GET /api/projects/:projectId/tasks.
//
// @Summary      List tasks in a project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {array}   domain.Task
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), identity, c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/projects/:projectId/tasks. Status is optional
// and defaults to TODO.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string             true  "Project id"
// @Param        body       body      createTaskRequest  true  "Task details"
// @Success      201        {object}  domain.Task
// @Failure      400        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), identity, c.Param("projectId"), ports.CreateTaskInput{
		Title:  req.Title,
		Status: req.Status,
		DueAt:  req.DueAt,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// Get handles GET /api/projects/:projectId/tasks/:taskId.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true  "Project id"
// @Param        taskId     path      string  true  "Task id"
// @Success      200        {object}  domain.Task
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId}/tasks/{taskId} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), identity, c.Param("projectId"), c.Param("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update handles PATCH /api/projects/:projectId/tasks/:taskId with partial
// semantics.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string             true  "Project id"
// @Param        taskId     path      string             true  "Task id"
// @Param        body       body      updateTaskRequest  true  "Fields to change"
// @Success      200        {object}  domain.Task
// @Failure      400        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId}/tasks/{taskId} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Update(c.Request().Context(), identity, c.Param("projectId"), c.Param("taskId"), ports.UpdateTaskInput{
		Title:  req.Title,
		Status: req.Status,
		DueAt:  req.DueAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/projects/:projectId/tasks/:taskId — a hard
// delete.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        projectId  path  string  true  "Project id"
// @Param        taskId     path  string  true  "Task id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/projects/{projectId}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("projectId"), c.Param("taskId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
