package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-dashboard/internal/format"
	"ulascansenturk/weather-dashboard/internal/inmemorycache"
)

// CachedClient serves repeated successful lookups from a TTL cache. Keys
// include the unit mode, so a unit switch always reaches the upstream.
type CachedClient struct {
	next  WeatherClient
	cache inmemorycache.Cache
	ttl   time.Duration
}

func NewCachedClient(next WeatherClient, cache inmemorycache.Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{next: next, cache: cache, ttl: ttl}
}

func (c *CachedClient) FetchCurrent(ctx context.Context, query Query, units format.UnitMode) (WeatherSnapshot, error) {
	key := currentKey(query, units)

	var snap WeatherSnapshot
	if c.lookup(key, &snap) {
		return snap, nil
	}

	snap, err := c.next.FetchCurrent(ctx, query, units)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	c.store(key, snap)
	return snap, nil
}

func (c *CachedClient) FetchForecast(ctx context.Context, lat, lon float64, units format.UnitMode) (ForecastBundle, error) {
	key := fmt.Sprintf("forecast|%s,%s|%s", formatCoordinate(lat), formatCoordinate(lon), units)

	var bundle ForecastBundle
	if c.lookup(key, &bundle) {
		return bundle, nil
	}

	bundle, err := c.next.FetchForecast(ctx, lat, lon, units)
	if err != nil {
		return ForecastBundle{}, err
	}
	c.store(key, bundle)
	return bundle, nil
}

func (c *CachedClient) lookup(key string, dst any) bool {
	if c.ttl <= 0 {
		return false
	}
	found, err := c.cache.Get(key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached weather response")
		return false
	}
	return found
}

func (c *CachedClient) store(key string, value any) {
	if c.ttl <= 0 {
		return
	}
	if err := c.cache.Set(key, value, c.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache weather response")
	}
}

func currentKey(query Query, units format.UnitMode) string {
	if query.Coordinates != nil {
		return fmt.Sprintf("current|%s,%s|%s", formatCoordinate(query.Coordinates.Lat), formatCoordinate(query.Coordinates.Lon), units)
	}
	return fmt.Sprintf("current|q=%s|%s", strings.TrimSpace(query.City), units)
}

var _ WeatherClient = (*CachedClient)(nil)
