package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/services"
)

type developerHandler struct {
	responder    Responder
	logger       zerolog.Logger
	associations *services.AssociationManager
}

func newDeveloperHandler(associations *services.AssociationManager) developerHandler {
	logger := log.With().Str("handlerName", "developerHandler").Logger()

	return developerHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		associations: associations,
	}
}

// createDeveloper creates a developer linked to existing projects
// @Summary Create developer
// @Tags Developers
// @Accept json
// @Produce json
// @Param developer body services.DeveloperInput true "Developer data"
// @Success 201 {object} Envelope "Developer created successfully"
// @Failure 400 {object} Envelope "Validation error or unknown project"
// @Router /developers [post]
func (h developerHandler) createDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.DeveloperInput
		if err := decodeJSON(r, "developer", &input); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to decode developer request body")
			h.responder.WriteError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.associations.SaveDeveloper(r.Context(), input.ToModel()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusCreated, "Developer created successfully", nil)
	}
}

// deleteDeveloper deletes a developer and its project links
// @Summary Delete developer
// @Tags Developers
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} Envelope "Developer successfully removed"
// @Failure 400 {object} Envelope "No developer with that ID"
// @Router /developers/{id} [delete]
func (h developerHandler) deleteDeveloper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.associations.DeleteDeveloper(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Developer successfully removed", nil)
	}
}

// addDeveloperToProject links a developer and a project; repeating it is a no-op
// @Summary Link developer to project
// @Tags Developers
// @Produce plain
// @Param developerId path int true "Developer ID"
// @Param projectId path int true "Project ID"
// @Success 200 {string} string "Developer added to project"
// @Failure 400 {string} string "Developer or project not found"
// @Router /developers/worked/{developerId}/{projectId} [post]
func (h developerHandler) addDeveloperToProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		developerID, err := pathInt(r, "developerId")
		if err != nil {
			h.responder.WriteTextError(w, err)
			return
		}
		projectID, err := pathInt(r, "projectId")
		if err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		if err := h.associations.AddDeveloperToProject(r.Context(), developerID, projectID); err != nil {
			h.responder.WriteTextError(w, err)
			return
		}

		h.responder.WriteText(w, http.StatusOK, "Developer added to project")
	}
}
