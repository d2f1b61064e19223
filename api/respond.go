package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rpupo63/devfolio-backend/errs"
)

const (
	internalServerError = "Internal Server Error"
	internalAdvice      = "An unexpected error occurred. Check that the path is correct and does not exist in the database and try again."

	maxRequestBody = 1 << 20
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first so a failure can still produce a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteEnvelope(w http.ResponseWriter, status int, message string, data any) {
	r.WriteJSON(w, status, Envelope{Message: message, Data: data})
}

// WriteText writes a bare string body.
func (r Responder) WriteText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, text); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes expected errors as {message: headline, data: error text}.
// Anything unexpected, or any ApiErr with a 5xx status, is logged and answered
// with the generic advisory so internals never reach the client.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		r.writeInternal(w, err)
		return
	}

	event := r.logger.Warn().Int("status", apiErr.StatusCode).Str("error", apiErr.Error())
	if apiErr.Field != "" {
		event = event.Str("field", apiErr.Field)
	}
	event.Msg("Request rejected")

	r.WriteEnvelope(w, apiErr.StatusCode, apiErr.Headline(), apiErr.Error())
}

// WriteTextError is WriteError for endpoints whose bodies are bare strings.
func (r Responder) WriteTextError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		r.writeInternal(w, err)
		return
	}
	r.logger.Warn().Int("status", apiErr.StatusCode).Str("error", apiErr.Error()).Msg("Request rejected")
	r.WriteText(w, apiErr.StatusCode, apiErr.Error())
}

func (r Responder) writeInternal(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("Internal error")
	} else {
		r.logger.Error().Err(err).Msg("Unexpected error")
	}
	r.WriteEnvelope(w, http.StatusInternalServerError, internalServerError, internalAdvice)
}

// decodeJSON reads a JSON body into dst, rejecting unknown trailing data.
func decodeJSON(r *http.Request, payloadType string, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	if dec.More() {
		return errs.NewMalformedPayloadError(payloadType, errors.New("unexpected data after JSON body"))
	}
	return nil
}

// pathInt parses an integer path parameter.
func pathInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewInvalidParameterError(name, raw)
	}
	return id, nil
}
