package partners

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahangamapass/venues-api/internal/types"
)

// Handler serves the partner signup endpoint.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler wires a partners handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the partner endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.SubmitSignup)
	r.Options("/signup", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

type signupResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SubmitSignup handles POST /partners/signup.
func (h *Handler) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	var params types.PartnerSignupParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeJSON(w, http.StatusBadRequest, signupResponse{OK: false, Error: "invalid JSON payload"})
		return
	}

	_, err := h.svc.SubmitSignup(r.Context(), params)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, signupResponse{OK: true})
	case errors.Is(err, types.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, signupResponse{OK: false, Error: err.Error()})
	case errors.Is(err, types.ErrConflict):
		writeJSON(w, http.StatusConflict, signupResponse{
			OK:    false,
			Error: "we already have an application for this venue from you",
		})
	case errors.Is(err, ErrNotificationFailed):
		h.logger.ErrorContext(r.Context(), "signup notification failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, signupResponse{
			OK:    false,
			Error: "your application was saved but we could not send a confirmation; we will be in touch",
		})
	default:
		h.logger.ErrorContext(r.Context(), "signup failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, signupResponse{OK: false, Error: "failed to submit application"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
