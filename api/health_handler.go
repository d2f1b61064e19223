package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/devfolio-backend/database"
	"github.com/rpupo63/devfolio-backend/errs"
)

type healthHandler struct {
	responder Responder
	db        database.Database
}

func newHealthHandler(db database.Database) healthHandler {
	return healthHandler{
		responder: NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		db:        db,
	}
}

// healthz reports whether the database answers
func (h healthHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("ping", "database", err))
			return
		}
		h.responder.WriteEnvelope(w, http.StatusOK, "OK", nil)
	}
}
