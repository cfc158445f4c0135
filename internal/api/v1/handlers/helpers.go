package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-dashboard/internal/providers"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	errorCode := "INTERNAL_ERROR"
	title := "Internal Server Error"

	switch code {
	case http.StatusBadRequest:
		errorCode = "BAD_REQUEST"
		title = "Bad Request"
	case http.StatusNotFound:
		errorCode = "NOT_FOUND"
		title = "Not Found"
	case http.StatusMethodNotAllowed:
		errorCode = "METHOD_NOT_ALLOWED"
		title = "Method Not Allowed"
	case http.StatusBadGateway:
		errorCode = "BAD_GATEWAY"
		title = "Bad Gateway"
	case http.StatusServiceUnavailable:
		errorCode = "SERVICE_UNAVAILABLE"
		title = "Service Unavailable"
	}

	respondWithJSON(w, code, ErrorResponse{
		Errors: []Error{
			{
				Code:   errorCode,
				Detail: message,
				Status: code,
				Title:  title,
			},
		},
	})
}

// respondWithLookupError maps a lookup failure to its HTTP status and user message.
func respondWithLookupError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var lookupErr *providers.Error
	if !errors.As(err, &lookupErr) {
		logger.Error().Err(err).Msg("lookup failed")
		respondWithError(w, http.StatusInternalServerError, "failed to get weather data: "+err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch lookupErr.Kind {
	case providers.KindInvalidInput:
		status = http.StatusBadRequest
	case providers.KindNotFound:
		status = http.StatusNotFound
	case providers.KindUpstreamError:
		status = http.StatusBadGateway
	case providers.KindTransportError:
		status = http.StatusServiceUnavailable
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("kind", string(lookupErr.Kind)).Int("status", status).Msg("lookup failed")

	respondWithError(w, status, lookupErr.Message)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// parseCoordinates reads lat and lon. ok is false when neither is present.
func parseCoordinates(r *http.Request) (lat, lon float64, ok bool, err error) {
	query := r.URL.Query()
	rawLat, rawLon := query.Get("lat"), query.Get("lon")
	if rawLat == "" && rawLon == "" {
		return 0, 0, false, nil
	}

	lat, err = strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return 0, 0, true, fmt.Errorf("lat must be a number")
	}
	lon, err = strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return 0, 0, true, fmt.Errorf("lon must be a number")
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, true, fmt.Errorf("coordinates out of range")
	}

	return lat, lon, true, nil
}
