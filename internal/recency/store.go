package recency

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-dashboard/internal/db/kvstore"
)

const (
	MaxEntries = 6
	DefaultKey = "recentCities"
)

type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type Store interface {
	Record(ctx context.Context, name string, lat, lon float64)
	List() []Location
}

// store is a most-recently-used list of searched locations, unique by name.
// The in-memory list is authoritative; the backend only mirrors it.
type store struct {
	backend kvstore.Store
	key     string

	mu      sync.Mutex
	entries []Location
	// persistMu orders backend writes. It is taken before mu is released so
	// writes land in mutation order while List stays unblocked.
	persistMu sync.Mutex
}

// NewStore loads the persisted list. Absent, unreadable or malformed data
// starts an empty list.
func NewStore(ctx context.Context, backend kvstore.Store, key string) Store {
	if key == "" {
		key = DefaultKey
	}
	s := &store{backend: backend, key: key}
	s.entries = s.load(ctx)
	return s
}

func (s *store) load(ctx context.Context) []Location {
	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("failed to read recent locations, starting empty")
		return nil
	}
	if !found || raw == "" {
		return nil
	}

	var entries []Location
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("malformed recent locations, starting empty")
		return nil
	}

	return dedupe(entries)
}

func (s *store) Record(ctx context.Context, name string, lat, lon float64) {
	s.mu.Lock()

	next := make([]Location, 0, MaxEntries)
	next = append(next, Location{Name: name, Lat: lat, Lon: lon})
	for _, loc := range s.entries {
		if loc.Name == name {
			continue
		}
		if len(next) == MaxEntries {
			break
		}
		next = append(next, loc)
	}
	s.entries = next

	payload, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		log.Warn().Err(err).Msg("failed to encode recent locations")
		return
	}

	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	if err := s.backend.Set(ctx, s.key, string(payload)); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("failed to persist recent locations")
	}
}

func (s *store) List() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Location, len(s.entries))
	copy(out, s.entries)
	return out
}

// dedupe keeps the first occurrence of each name, up to MaxEntries.
func dedupe(entries []Location) []Location {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Location, 0, MaxEntries)
	for _, loc := range entries {
		if _, ok := seen[loc.Name]; ok {
			continue
		}
		seen[loc.Name] = struct{}{}
		out = append(out, loc)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
