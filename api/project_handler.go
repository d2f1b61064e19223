package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/errs"
	"github.com/rpupo63/devfolio-backend/services"
)

type projectHandler struct {
	responder       Responder
	logger          zerolog.Logger
	projects        *services.ProjectService
	lifecycle       *services.ProjectLifecycle
	queries         *services.QueryFacade
	metrics         *metrics
	defaultPageSize int
}

func newProjectHandler(
	projects *services.ProjectService,
	lifecycle *services.ProjectLifecycle,
	queries *services.QueryFacade,
	m *metrics,
	defaultPageSize int,
) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		projects:        projects,
		lifecycle:       lifecycle,
		queries:         queries,
		metrics:         m,
		defaultPageSize: defaultPageSize,
	}
}

// getAllProjects returns one page of projects
// @Summary List projects
// @Description Offset paging ordered by project ID
// @Tags Projects
// @Produce json
// @Param page query int false "Zero based page number" default(0)
// @Param size query int false "Page size" default(3)
// @Success 200 {object} services.Page[services.ProjectView] "Page of projects"
// @Failure 400 {object} Envelope "Bad Request - Invalid paging parameters"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		size, err := queryInt(r, "size", h.defaultPageSize)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.queries.ListProjects(r.Context(), page, size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, result)
	}
}

// getProjectByName returns the first project whose name contains the path value
// @Summary Find project by name
// @Tags Projects
// @Produce json
// @Param name path string true "Name substring"
// @Success 200 {object} Envelope "Project found successfully"
// @Failure 400 {object} Envelope "No project name contains the value"
// @Router /projects/{name} [get]
func (h projectHandler) getProjectByName() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		view, err := h.queries.FindProjectByName(r.Context(), name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Project found successfully", view)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description New projects start in Draft and may not start before today
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} Envelope "Project created successfully"
// @Failure 400 {object} Envelope "Validation Error"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.ProjectInput
		if err := decodeJSON(r, "project", &input); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := input.ToModel()
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if err := h.projects.Create(r.Context(), project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusCreated, "Project created successfully", nil)
	}
}

// updateProject replaces every field and link of an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param project body services.ProjectInput true "Replacement project data"
// @Success 200 {object} Envelope "Project updated successfully"
// @Failure 400 {object} Envelope "Validation Error"
// @Failure 404 {object} Envelope "Project not found"
// @Router /projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProjectInput
		if err := decodeJSON(r, "project", &input); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := input.ToModel()
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if err := h.projects.Update(r.Context(), id, project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		view, err := h.queries.ProjectView(r.Context(), project)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Project updated successfully", view)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} Envelope "Project deleted successfully"
// @Failure 400 {object} Envelope "No project with that ID"
// @Router /projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Project deleted successfully", fmt.Sprintf("Project with ID %d deleted.", id))
	}
}

// moveToTesting moves a project to the Testing state
// @Summary Move project to testing
// @Tags Projects
// @Produce plain
// @Param id path int true "Project ID"
// @Success 200 {string} string "Projects moved to testing successfully"
// @Failure 400 {string} string "Testing state is not seeded"
// @Failure 404 {string} string "Project not found"
// @Failure 500 {string} string "Transition failed"
// @Router /projects/totesting/{id} [patch]
func (h projectHandler) moveToTesting() http.HandlerFunc {
	return h.transition("testing", h.lifecycle.MoveToTesting)
}

// moveToProduction moves a project to the Production state
// @Summary Move project to production
// @Tags Projects
// @Produce plain
// @Param id path int true "Project ID"
// @Success 200 {string} string "Projects moved to production successfully"
// @Failure 400 {string} string "Production state is not seeded"
// @Failure 404 {string} string "Project not found"
// @Failure 500 {string} string "Transition failed"
// @Router /projects/toprod/{id} [patch]
func (h projectHandler) moveToProduction() http.HandlerFunc {
	return h.transition("production", h.lifecycle.MoveToProduction)
}

type transitionFunc func(ctx context.Context, projectID int) (services.TransitionOutcome, error)

func (h projectHandler) transition(target string, move transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		outcome, err := move(r.Context(), id)
		if err != nil {
			h.metrics.transitions.WithLabelValues(target, outcome.String()).Inc()
			h.logger.Error().Err(err).Int("projectID", id).Str("target", target).Msg("Project transition failed")
			h.responder.WriteText(w, http.StatusInternalServerError, "Error occurred while moving projects to "+target)
			return
		}
		h.metrics.transitions.WithLabelValues(target, outcome.String()).Inc()

		switch outcome {
		case services.TransitionApplied:
			h.responder.WriteText(w, http.StatusOK, "Projects moved to "+target+" successfully")
		case services.TransitionProjectNotFound:
			h.responder.WriteText(w, http.StatusNotFound, "Project not found")
		default:
			h.responder.WriteText(w, http.StatusBadRequest, "No projects were moved to "+target)
		}
	}
}

// getProjectsByTechnology lists the projects that use a technology
// @Summary Find projects by technology
// @Tags Projects
// @Produce json
// @Param tech path string true "Exact technology name"
// @Success 200 {object} Envelope "Projects found successfully"
// @Failure 404 {object} Envelope "No projects found with this technology"
// @Router /projects/tec/{tech} [get]
func (h projectHandler) getProjectsByTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tech := chi.URLParam(r, "tech")

		views, err := h.queries.FindProjectsByTechnology(r.Context(), tech)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(views) == 0 {
			h.responder.WriteEnvelope(w, http.StatusNotFound, "No projects found with this technology", nil)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Projects found successfully", views)
	}
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidParameterError(name, raw)
	}
	return v, nil
}
