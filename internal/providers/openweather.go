package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"ulascansenturk/weather-dashboard/internal/format"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	maxResponseBytes = 1 << 20
)

type WeatherClient interface {
	FetchCurrent(ctx context.Context, query Query, units format.UnitMode) (WeatherSnapshot, error)
	FetchForecast(ctx context.Context, lat, lon float64, units format.UnitMode) (ForecastBundle, error)
}

type Options struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// OpenWeatherClient talks to the OpenWeatherMap current weather and One Call endpoints.
type OpenWeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
}

type rawResponse struct {
	status int
	body   []byte
}

func NewOpenWeatherClient(opts Options) *OpenWeatherClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &OpenWeatherClient{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (c *OpenWeatherClient) FetchCurrent(ctx context.Context, query Query, units format.UnitMode) (WeatherSnapshot, error) {
	params := url.Values{}
	fallback := MsgCoordinatesFailed

	if query.Coordinates != nil {
		params.Set("lat", formatCoordinate(query.Coordinates.Lat))
		params.Set("lon", formatCoordinate(query.Coordinates.Lon))
	} else {
		city := strings.TrimSpace(query.City)
		if city == "" {
			return WeatherSnapshot{}, NewError(KindInvalidInput, MsgBlankCity, nil)
		}
		params.Set("q", city)
		fallback = fmt.Sprintf("City %q not found", city)
	}

	raw, err := c.get(ctx, "/weather", params, units)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	if err := classifyStatus(raw, fallback); err != nil {
		return WeatherSnapshot{}, err
	}

	var resp currentResponse
	if err := json.Unmarshal(raw.body, &resp); err != nil {
		return WeatherSnapshot{}, NewError(KindUpstreamError, MsgUnexpectedResponse, fmt.Errorf("malformed JSON: %w", err))
	}
	if resp.Coord == nil {
		return WeatherSnapshot{}, NewError(KindUpstreamError, MsgUnexpectedResponse, fmt.Errorf("response has no coordinates"))
	}

	return resp.snapshot(units), nil
}

func (c *OpenWeatherClient) FetchForecast(ctx context.Context, lat, lon float64, units format.UnitMode) (ForecastBundle, error) {
	params := url.Values{}
	params.Set("lat", formatCoordinate(lat))
	params.Set("lon", formatCoordinate(lon))
	params.Set("exclude", "minutely,alerts")

	raw, err := c.get(ctx, "/onecall", params, units)
	if err != nil {
		return ForecastBundle{}, err
	}
	if err := classifyStatus(raw, MsgForecastFailed); err != nil {
		return ForecastBundle{}, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(raw.body, &resp); err != nil {
		return ForecastBundle{}, NewError(KindUpstreamError, MsgUnexpectedResponse, fmt.Errorf("malformed JSON: %w", err))
	}

	return resp.bundle(units), nil
}

// get issues one GET. Identical in-flight requests share a single exchange,
// which runs detached from any one caller's cancellation and is bounded by
// the client timeout. Each caller still stops waiting when its own ctx ends.
func (c *OpenWeatherClient) get(ctx context.Context, path string, params url.Values, units format.UnitMode) (rawResponse, error) {
	params.Set("units", string(units))
	key := path + "?" + params.Encode()
	params.Set("appid", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	ch := c.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.client.Timeout)
		defer cancel()

		if err := c.limiter.Wait(shared); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}

		req, err := http.NewRequestWithContext(shared, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		return rawResponse{status: resp.StatusCode, body: body}, nil
	})

	select {
	case <-ctx.Done():
		err := fmt.Errorf("request canceled: %w", ctx.Err())
		log.Warn().Err(err).Str("path", path).Msg("caller stopped waiting for weather API")
		return rawResponse{}, NewError(KindTransportError, MsgTransport, err)
	case res := <-ch:
		if res.Err != nil {
			log.Error().Err(res.Err).Str("path", path).Msg("weather API exchange failed")
			return rawResponse{}, NewError(KindTransportError, MsgTransport, res.Err)
		}
		return res.Val.(rawResponse), nil
	}
}

// classifyStatus maps a non-2xx response to an *Error. A 4xx with a message is
// NotFound; anything else is an UpstreamError, with fallback used when the
// body carries no message.
func classifyStatus(raw rawResponse, fallback string) error {
	if raw.status >= 200 && raw.status < 300 {
		return nil
	}

	cause := fmt.Errorf("API returned status code: %d", raw.status)

	var body errorResponse
	if err := json.Unmarshal(raw.body, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return NewError(KindUpstreamError, fallback, cause)
	}

	if raw.status >= 400 && raw.status < 500 {
		return NewError(KindNotFound, body.Message, cause)
	}
	return NewError(KindUpstreamError, body.Message, cause)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var _ WeatherClient = (*OpenWeatherClient)(nil)
