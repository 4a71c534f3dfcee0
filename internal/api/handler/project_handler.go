package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamops/teamops-api/internal/api/metrics"
	"github.com/teamops/teamops-api/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations. Ownership
// decisions live in the service; the handler only shuttles the identity
// through.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=160"`
	Description string `json:"description" validate:"max=500"`
}

// updateProjectRequest is a partial update: nil fields were absent from the
// request body and stay unchanged.
type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List handles GET /api/projects — the caller's projects, newest first.
//
// @Summary      List own projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Failure      401  {object}  map[string]any
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	projects, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.service.Create(c.Request().Context(), identity, ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, project)
}

// Get handles GET /api/projects/:projectId. Absent and not-owned are the
// same 404.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {object}  domain.Project
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	project, err := h.service.Get(c.Request().Context(), identity, c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Update handles PATCH /api/projects/:projectId with partial semantics.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string                true  "Project id"
// @Param        body       body      updateProjectRequest  true  "Fields to change"
// @Success      200        {object}  domain.Project
// @Failure      400        {object}  map[string]any
// @Failure      401        {object}  map[string]any
// @Failure      404        {object}  map[string]any
// @Router       /api/projects/{projectId} [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Update(c.Request().Context(), identity, c.Param("projectId"), ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:projectId. Tasks under the project
// are deleted with it.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        projectId  path  string  true  "Project id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("projectId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
