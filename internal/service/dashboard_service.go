package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-dashboard/internal/format"
	"ulascansenturk/weather-dashboard/internal/mapview"
	"ulascansenturk/weather-dashboard/internal/providers"
	"ulascansenturk/weather-dashboard/internal/recency"
	"ulascansenturk/weather-dashboard/internal/render"
)

type LookupState string

const (
	StateIdle             LookupState = "idle"
	StateFetchingCurrent  LookupState = "fetching_current"
	StateFetchingForecast LookupState = "fetching_forecast"
	StateDone             LookupState = "done"
	StateFailed           LookupState = "failed"
)

// Dashboard is the full view-model handed to the UI layer.
type Dashboard struct {
	Units      format.UnitMode      `json:"units"`
	State      LookupState          `json:"state"`
	Generation uint64               `json:"generation"`
	Current    *render.CurrentView  `json:"current,omitempty"`
	Forecast   *render.ForecastView `json:"forecast,omitempty"`
	Error      string               `json:"error,omitempty"`
	Recents    []recency.Location   `json:"recents"`
	Map        mapview.View         `json:"map"`
}

type DashboardService interface {
	LookupByCity(ctx context.Context, name string) (Dashboard, error)
	LookupByCoordinates(ctx context.Context, lat, lon float64) (Dashboard, error)
	SwitchUnits(ctx context.Context, mode format.UnitMode) (Dashboard, error)
	// Start runs the initial lookup: coordinates when the client knows its
	// position, the default city otherwise.
	Start(ctx context.Context, coords *providers.Coordinates) (Dashboard, error)
	Dashboard() Dashboard
	Recents() []recency.Location
}

type dashboardService struct {
	client      providers.WeatherClient
	recents     recency.Store
	mapView     mapview.Map
	defaultCity string

	mu       sync.Mutex
	units    format.UnitMode
	state    LookupState
	current  *render.CurrentView
	forecast *render.ForecastView
	errMsg   string
	// latest is the generation of the newest started lookup. Only that
	// lookup may change the fields above.
	latest uint64

	recordMu sync.Mutex
	recorded uint64
}

func NewDashboardService(
	client providers.WeatherClient,
	recents recency.Store,
	mapView mapview.Map,
	defaultCity string,
	units format.UnitMode,
) DashboardService {
	if units != format.Imperial {
		units = format.Metric
	}
	return &dashboardService{
		client:      client,
		recents:     recents,
		mapView:     mapView,
		defaultCity: defaultCity,
		units:       units,
		state:       StateIdle,
	}
}

func (s *dashboardService) LookupByCity(ctx context.Context, name string) (Dashboard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		err := providers.NewError(providers.KindInvalidInput, providers.MsgBlankCity, nil)

		s.mu.Lock()
		s.errMsg = err.Message
		s.state = StateFailed
		s.mu.Unlock()

		return s.Dashboard(), err
	}
	return s.lookup(ctx, providers.ByCity(name))
}

func (s *dashboardService) LookupByCoordinates(ctx context.Context, lat, lon float64) (Dashboard, error) {
	return s.lookup(ctx, providers.ByCoordinates(lat, lon))
}

func (s *dashboardService) SwitchUnits(ctx context.Context, mode format.UnitMode) (Dashboard, error) {
	if mode != format.Metric && mode != format.Imperial {
		return s.Dashboard(), providers.NewError(providers.KindInvalidInput, fmt.Sprintf("Unknown unit mode %q.", mode), nil)
	}

	s.mu.Lock()
	s.units = mode
	s.mu.Unlock()

	recents := s.recents.List()
	if len(recents) == 0 {
		return s.Dashboard(), nil
	}
	return s.LookupByCity(ctx, recents[0].Name)
}

func (s *dashboardService) Start(ctx context.Context, coords *providers.Coordinates) (Dashboard, error) {
	if coords != nil {
		return s.LookupByCoordinates(ctx, coords.Lat, coords.Lon)
	}
	return s.LookupByCity(ctx, s.defaultCity)
}

func (s *dashboardService) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashboardLocked()
}

func (s *dashboardService) Recents() []recency.Location {
	return s.recents.List()
}

func (s *dashboardService) dashboardLocked() Dashboard {
	return Dashboard{
		Units:      s.units,
		State:      s.state,
		Generation: s.latest,
		Current:    s.current,
		Forecast:   s.forecast,
		Error:      s.errMsg,
		Recents:    s.recents.List(),
		Map:        s.mapView.Snapshot(),
	}
}

// lookup runs the two-step fetch. The forecast step never fails the lookup.
func (s *dashboardService) lookup(ctx context.Context, query providers.Query) (Dashboard, error) {
	s.mu.Lock()
	s.latest++
	gen := s.latest
	units := s.units
	s.state = StateFetchingCurrent
	s.mu.Unlock()

	logger := log.With().Uint64("generation", gen).Str("units", string(units)).Logger()
	logger.Debug().Str("state", string(StateFetchingCurrent)).Msg("lookup started")

	opts := render.Options{Units: units}

	snap, err := s.client.FetchCurrent(ctx, query, units)
	if err != nil {
		logger.Warn().Err(err).Str("kind", string(providers.KindOf(err))).Msg("current conditions lookup failed")

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen == s.latest {
			s.state = StateFailed
			s.errMsg = providers.UserMessage(err)
		}
		d := s.dashboardLocked()
		d.Generation = gen
		d.State = StateFailed
		d.Error = providers.UserMessage(err)
		return d, err
	}

	current := render.RenderCurrent(snap, opts)

	s.mu.Lock()
	if gen == s.latest {
		s.current = &current
		s.errMsg = ""
		s.state = StateFetchingForecast
	}
	s.mu.Unlock()
	logger.Debug().Str("state", string(StateFetchingForecast)).Str("location", snap.Name).Msg("current conditions rendered")

	var forecast render.ForecastView
	bundle, err := s.client.FetchForecast(ctx, snap.Coordinates.Lat, snap.Coordinates.Lon, units)
	if err != nil {
		logger.Warn().Err(err).Str("location", snap.Name).Msg("forecast unavailable")
		forecast = render.ForecastUnavailable()
	} else {
		forecast = render.RenderForecast(bundle, opts)
	}

	s.mu.Lock()
	if gen != s.latest {
		logger.Warn().Uint64("latest", s.latest).Str("location", snap.Name).Msg("discarding stale lookup result")
		d := Dashboard{
			Units:      units,
			State:      StateDone,
			Generation: gen,
			Current:    &current,
			Forecast:   &forecast,
			Recents:    s.recents.List(),
			Map:        s.mapView.Snapshot(),
		}
		s.mu.Unlock()
		return d, nil
	}

	s.current = &current
	s.forecast = &forecast
	s.errMsg = ""
	s.state = StateDone
	s.mapView.Recenter(snap.Coordinates.Lat, snap.Coordinates.Lon, snap.Name)
	d := s.dashboardLocked()
	s.mu.Unlock()

	if s.record(ctx, gen, snap) {
		d.Recents = s.recents.List()
	}
	logger.Debug().Str("state", string(StateDone)).Str("location", snap.Name).Msg("lookup finished")

	return d, nil
}

// record adds a committed lookup to the recents outside the service lock.
// Commits may arrive here out of order; an older generation is dropped.
// Locations without a name cannot be looked up again by name and are skipped.
func (s *dashboardService) record(ctx context.Context, gen uint64, snap providers.WeatherSnapshot) bool {
	if strings.TrimSpace(snap.Name) == "" {
		log.Debug().Uint64("generation", gen).Msg("unnamed location not added to recents")
		return false
	}

	s.recordMu.Lock()
	defer s.recordMu.Unlock()

	if gen <= s.recorded {
		return false
	}
	s.recorded = gen
	s.recents.Record(context.WithoutCancel(ctx), snap.Name, snap.Coordinates.Lat, snap.Coordinates.Lon)
	return true
}
