package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hashforge/site-server-go/internal/audit"
	apperrors "github.com/hashforge/site-server-go/internal/errors"
	"github.com/hashforge/site-server-go/internal/middleware"
	"github.com/hashforge/site-server-go/internal/model"
	"github.com/hashforge/site-server-go/internal/service"
)

type AdminHandler struct {
	auth             *service.AuthService
	admins           *service.AdminService
	submissions      *service.SubmissionService
	authMiddleware   func(http.Handler) http.Handler
	minPasswordChars int
}

func NewAdminHandler(
	auth *service.AuthService,
	admins *service.AdminService,
	submissions *service.SubmissionService,
	authMiddleware func(http.Handler) http.Handler,
	minPasswordChars int,
) *AdminHandler {
	return &AdminHandler{
		auth:             auth,
		admins:           admins,
		submissions:      submissions,
		authMiddleware:   authMiddleware,
		minPasswordChars: minPasswordChars,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware)

		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Get("/stats", h.Stats)

		// Submissions
		r.Get("/contacts", h.ListContacts)
		r.Get("/appointments", h.ListAppointments)
		r.Patch("/appointments/{id}/status", h.UpdateAppointmentStatus)

		// Admin accounts
		r.Get("/users", h.ListAdmins)
		r.Post("/users", h.CreateAdmin)
		r.Patch("/users/{id}", h.UpdateAdmin)
		r.Delete("/users/{id}", h.DeleteAdmin)
	})

	return r
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	token, admin, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error().Err(err).Msg("admin login error")
		writeError(w, apperrors.Internal("Login failed"))
		return
	}

	if token == "" {
		audit.LogFromRequest(r, audit.Event{
			Type:     audit.EventLoginFailure,
			Username: req.Username,
		})
		writeError(w, apperrors.Unauthorized("Invalid username or password"))
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventLoginSuccess,
		AdminID: admin.ID,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"sessionToken": token,
		"admin":        admin,
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())

	token := bearerToken(r)
	if token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			log.Error().Err(err).Msg("failed to delete session on logout")
			writeError(w, apperrors.Database(err))
			return
		}
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout, AdminID: admin.ID})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   admin,
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admins.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get stats")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Submissions

func (h *AdminHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissions.GetContacts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list contact submissions")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.submissions.GetAppointments(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, appts)
}

func (h *AdminHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	appt, err := h.submissions.UpdateAppointmentStatus(
		r.Context(), id, model.AppointmentStatus(req.Status), optional(req.RejectionReason),
	)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Str("appointmentId", id).Msg("failed to update appointment status")
		writeError(w, apperrors.Database(err))
		return
	}

	admin := middleware.GetAdmin(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAppointmentStatus,
		AdminID: admin.ID,
		Details: map[string]interface{}{
			"appointmentId": appt.ID,
			"status":        string(appt.Status),
		},
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"appointment": appt,
	})
}

// Admin accounts

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.GetAdmins(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list admins")
		writeError(w, apperrors.Database(err))
		return
	}

	writeJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(h.minPasswordChars); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.admins.CreateAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("failed to create admin")
		writeError(w, apperrors.Database(err))
		return
	}

	actor := middleware.GetAdmin(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAdminCreate,
		AdminID: actor.ID,
		Details: map[string]interface{}{"createdUsername": created.Username},
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"admin":   created,
	})
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := req.Validate(h.minPasswordChars); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.admins.UpdateAdmin(r.Context(), id, req.Username, req.Password)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Str("adminId", id).Msg("failed to update admin")
		writeError(w, apperrors.Database(err))
		return
	}

	actor := middleware.GetAdmin(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAdminUpdate,
		AdminID: actor.ID,
		Details: map[string]interface{}{"updatedAdminId": id},
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   updated,
	})
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.admins.DeleteAdmin(r.Context(), id); err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Str("adminId", id).Msg("failed to delete admin")
		writeError(w, apperrors.Database(err))
		return
	}

	actor := middleware.GetAdmin(r.Context())
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventAdminDelete,
		AdminID: actor.ID,
		Details: map[string]interface{}{"deletedAdminId": id},
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
