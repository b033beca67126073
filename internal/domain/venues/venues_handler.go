package venues

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ahangamapass/venues-api/internal/types"
)

// Handler serves the venue retrieval endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler wires a venues handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the venue endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListVenues)
	r.Get("/query", h.QueryVenues)
	r.Get("/{slug}", h.GetVenue)
	r.Options("/*", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Options("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type listResponse struct {
	OK     bool          `json:"ok"`
	Venues []types.Venue `json:"venues"`
	Total  int           `json:"total"`
	Error  string        `json:"error,omitempty"`
}

type rawListResponse struct {
	OK     bool                `json:"ok"`
	Venues []types.RawVenueRow `json:"venues"`
	Error  string              `json:"error,omitempty"`
}

type venueResponse struct {
	OK    bool        `json:"ok"`
	Venue types.Venue `json:"venue,omitempty"`
	Error string      `json:"error,omitempty"`
}

// ListVenues handles GET /venues. It returns the raw rows: normalization is
// the caller's single decode point for this payload.
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	slug, liveOnly, category, ok := h.listParams(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.ListRawVenues(r.Context(), slug, liveOnly, category)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list venues failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, rawListResponse{OK: false, Error: "failed to load venues"})
		return
	}
	if rows == nil {
		rows = []types.RawVenueRow{}
	}
	writeJSON(w, http.StatusOK, rawListResponse{OK: true, Venues: rows})
}

// QueryVenues handles GET /venues/query: the full pipeline of retrieval,
// normalization, codec, filter, and sort. lat/lng supply the origin for the
// nearest sort.
func (h *Handler) QueryVenues(w http.ResponseWriter, r *http.Request) {
	slug, liveOnly, category, ok := h.listParams(w, r)
	if !ok {
		return
	}

	var origin *types.LatLng
	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr != "" || lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			writeJSON(w, http.StatusBadRequest, listResponse{OK: false, Error: "lat and lng must both be valid numbers"})
			return
		}
		origin = &types.LatLng{Lat: lat, Lng: lng}
	}

	result, err := h.svc.QueryVenues(r.Context(), slug, liveOnly, category, r.URL.Query(), origin)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "query venues failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, listResponse{OK: false, Error: "failed to load venues"})
		return
	}
	if result.Venues == nil {
		result.Venues = []types.Venue{}
	}
	writeJSON(w, http.StatusOK, listResponse{OK: true, Venues: result.Venues, Total: result.Total})
}

// GetVenue handles GET /venues/{slug}.
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !slugPattern.MatchString(slug) {
		writeJSON(w, http.StatusBadRequest, venueResponse{OK: false, Error: "invalid venue slug"})
		return
	}
	destination := r.URL.Query().Get("destinationSlug")
	if destination == "" {
		destination = DefaultDestinationSlug
	}

	venue, err := h.svc.GetVenueBySlug(r.Context(), destination, slug)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, venueResponse{OK: false, Error: "venue not found"})
			return
		}
		h.logger.ErrorContext(r.Context(), "get venue failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, venueResponse{OK: false, Error: "failed to load venue"})
		return
	}
	writeJSON(w, http.StatusOK, venueResponse{OK: true, Venue: venue})
}

// listParams reads the shared retrieval parameters. liveOnly defaults to
// true; only the literal string "false" turns it off. Other falsy-looking
// values ("0", "no") intentionally keep it on — the public site has always
// behaved this way and pass partners rely on it.
func (h *Handler) listParams(w http.ResponseWriter, r *http.Request) (slug string, liveOnly bool, category string, ok bool) {
	q := r.URL.Query()

	slug = q.Get("destinationSlug")
	if slug == "" {
		slug = DefaultDestinationSlug
	}
	if !slugPattern.MatchString(slug) {
		writeJSON(w, http.StatusBadRequest, rawListResponse{OK: false, Error: "invalid destinationSlug"})
		return "", false, "", false
	}

	liveOnly = q.Get("liveOnly") != "false"
	category = q.Get("category")
	return slug, liveOnly, category, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
