package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type lookupService interface {
	Geocode(ctx context.Context, query string) (*domain.Coordinates, error)
	Countries(ctx context.Context) ([]string, error)
}

// LookupHandler serves geocoding and country-list endpoints.
type LookupHandler struct {
	svc lookupService
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, log: logger.With("handler", "lookup")}
}

type geocodeResponse struct {
	Found bool     `json:"found"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
}

// Geocode handles GET /api/lookup/geocode?q=.
func (h *LookupHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	coords, err := h.svc.Geocode(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		if isClientError(err) {
			handleError(h.log, w, r, err)
			return
		}
		h.log.WarnContext(r.Context(), "geocode failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "geocoding unavailable")
		return
	}

	if coords == nil {
		writeJSON(w, http.StatusOK, geocodeResponse{})
		return
	}
	writeJSON(w, http.StatusOK, geocodeResponse{Found: true, Lat: &coords.Lat, Lng: &coords.Lng})
}

// Countries handles GET /api/lookup/countries.
func (h *LookupHandler) Countries(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Countries(r.Context())
	if err != nil {
		handleListError[string](h.log, w, r, err)
		return
	}
	writeItems(w, names)
}
