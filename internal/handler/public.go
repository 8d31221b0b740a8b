package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/hashforge/site-server-go/internal/errors"
	"github.com/hashforge/site-server-go/internal/service"
)

// PublicHandler serves the unauthenticated form endpoints used by the
// marketing site.
type PublicHandler struct {
	submissions   *service.SubmissionService
	formRateLimit func(http.Handler) http.Handler
}

func NewPublicHandler(
	submissions *service.SubmissionService,
	formRateLimit func(http.Handler) http.Handler,
) *PublicHandler {
	return &PublicHandler{
		submissions:   submissions,
		formRateLimit: formRateLimit,
	}
}

func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.formRateLimit).Post("/contact", h.CreateContact)
	r.Get("/contact", h.ListContacts)

	r.With(h.formRateLimit).Post("/appointments", h.CreateAppointment)
	r.Get("/appointments", h.ListAppointments)

	return r
}

func (h *PublicHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	submission, err := h.submissions.CreateContact(r.Context(), req.Params())
	if err != nil {
		log.Error().Err(err).Msg("failed to create contact submission")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      submission.ID,
	})
}

func (h *PublicHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissions.GetContacts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list contact submissions")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

func (h *PublicHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	appt, err := h.submissions.CreateAppointment(r.Context(), req.Params())
	if err != nil {
		log.Error().Err(err).Msg("failed to create appointment")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      appt.ID,
	})
}

func (h *PublicHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.submissions.GetAppointments(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, appts)
}
