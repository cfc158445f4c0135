package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-dashboard/internal/format"
	"ulascansenturk/weather-dashboard/internal/providers"
	"ulascansenturk/weather-dashboard/internal/service"
)

const requestIDHeader = "X-Request-ID"

type WeatherHandler struct {
	dashboard service.DashboardService
	timeout   time.Duration
}

func NewWeatherHandler(dashboard service.DashboardService, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		dashboard: dashboard,
		timeout:   timeout,
	}
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)

	logger := log.With().
		Str("request_id", requestID).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Logger()
	r = r.WithContext(logger.WithContext(r.Context()))

	switch r.URL.Path {
	case "/weather":
		h.GetWeather(w, r)
	case "/weather/start":
		h.StartDashboard(w, r)
	case "/units":
		h.SwitchUnits(w, r)
	case "/recents":
		h.GetRecents(w, r)
	case "/dashboard":
		h.GetDashboard(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "not found")
	}
}

// GetWeather looks up by city (?q=) or by coordinates (?lat=&lon=).
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	lat, lon, hasCoords, err := parseCoordinates(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var dashboard service.Dashboard
	if hasCoords {
		dashboard, err = h.dashboard.LookupByCoordinates(ctx, lat, lon)
	} else {
		dashboard, err = h.dashboard.LookupByCity(ctx, r.URL.Query().Get("q"))
	}
	if err != nil {
		respondWithLookupError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

// StartDashboard runs the initial lookup. Missing or unusable coordinates fall
// back to the default city.
func (h *WeatherHandler) StartDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var coords *providers.Coordinates
	lat, lon, hasCoords, err := parseCoordinates(r)
	if err == nil && hasCoords {
		coords = &providers.Coordinates{Lat: lat, Lon: lon}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	dashboard, err := h.dashboard.Start(ctx, coords)
	if err != nil {
		respondWithLookupError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

func (h *WeatherHandler) SwitchUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	mode, err := format.ParseUnitMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "mode must be 'metric' or 'imperial'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	dashboard, err := h.dashboard.SwitchUnits(ctx, mode)
	if err != nil {
		respondWithLookupError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

func (h *WeatherHandler) GetRecents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondWithJSON(w, http.StatusOK, RecentsResponse{Recents: h.dashboard.Recents()})
}

func (h *WeatherHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondWithJSON(w, http.StatusOK, h.dashboard.Dashboard())
}
