package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/services"
)

type technologyHandler struct {
	responder    Responder
	logger       zerolog.Logger
	associations *services.AssociationManager
}

func newTechnologyHandler(associations *services.AssociationManager) technologyHandler {
	logger := log.With().Str("handlerName", "technologyHandler").Logger()

	return technologyHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		associations: associations,
	}
}

// createTechnology stores a technology under the caller's ID
// @Summary Create technology
// @Tags Technologies
// @Accept json
// @Produce plain
// @Param technology body services.TechnologyInput true "Technology data"
// @Success 201 {string} string "Technology created successfully"
// @Failure 400 {string} string "ID already in use or unknown project"
// @Router /technologies [post]
func (h technologyHandler) createTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.TechnologyInput
		if err := decodeJSON(r, "technology", &input); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode technology request body")
			h.responder.WriteTextError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		if err := h.associations.SaveTechnology(r.Context(), input.ToModel()); err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		h.responder.WriteText(w, http.StatusCreated, "Technology created successfully")
	}
}

// deleteTechnology deletes a technology and its project links
// @Summary Delete technology
// @Tags Technologies
// @Produce json
// @Param id path int true "Technology ID"
// @Success 200 {object} Envelope "Technology successfully removed"
// @Failure 400 {object} Envelope "No technology with that ID"
// @Router /technologies/{id} [delete]
func (h technologyHandler) deleteTechnology() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.associations.DeleteTechnology(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Technology successfully removed", nil)
	}
}

// associateTechnologyWithProject links a technology to a project. Each call
// stores the pair again.
// @Summary Link technology to project
// @Tags Technologies
// @Produce plain
// @Param projectId path int true "Project ID"
// @Param technologyId path int true "Technology ID"
// @Success 200 {string} string "Technology associated with project successfully"
// @Failure 400 {string} string "Technology or project not found"
// @Router /technologies/used/{projectId}/{technologyId} [post]
func (h technologyHandler) associateTechnologyWithProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathInt(r, "projectId")
		if err != nil {
			h.responder.WriteTextError(w, err)
			return
		}
		technologyID, err := pathInt(r, "technologyId")
		if err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		if err := h.associations.AssociateTechnologyWithProject(r.Context(), projectID, technologyID); err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		h.responder.WriteText(w, http.StatusOK, "Technology associated with project successfully")
	}
}
