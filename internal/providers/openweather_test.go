package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
	"ulascansenturk/weather-dashboard/internal/format"
	"ulascansenturk/weather-dashboard/internal/providers"

	"github.com/stretchr/testify/suite"
)

type OpenWeatherClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *providers.OpenWeatherClient
	ctx      context.Context
	hits     atomic.Int32
	lastPath atomic.Value
	lastArgs atomic.Value
}

func hourly(n int) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, map[string]interface{}{
			"dt":      1700000000 + int64(i)*3600,
			"temp":    10.4 + float64(i),
			"weather": []map[string]interface{}{{"id": 500, "main": "Rain"}},
		})
	}
	return out
}

func daily(n int) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, map[string]interface{}{
			"dt":      1700000000 + int64(i)*86400,
			"temp":    map[string]interface{}{"max": 20.6, "min": 8.2},
			"weather": []map[string]interface{}{{"id": 800, "main": "Clear"}},
		})
	}
	return out
}

func (s *OpenWeatherClientTestSuite) SetupTest() {
	s.hits.Store(0)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.lastPath.Store(r.URL.Path)
		s.lastArgs.Store(r.URL.Query())

		query := r.URL.Query()
		switch r.URL.Path {
		case "/weather":
			switch query.Get("q") {
			case "London", "":
				if query.Get("q") == "" && query.Get("lat") == "" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				json.NewEncoder(w).Encode(map[string]interface{}{
					"name":    "London",
					"coord":   map[string]interface{}{"lat": 51.51, "lon": -0.13},
					"weather": []map[string]interface{}{{"id": 801, "main": "Clouds"}},
					"main":    map[string]interface{}{"temp": 15.2, "feels_like": 14.1, "humidity": 72},
					"wind":    map[string]interface{}{"speed": 4.6},
				})
			case "Nowhere":
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]interface{}{"cod": "404", "message": "city not found"})
			case "BrokenUpstream":
				w.WriteHeader(http.StatusInternalServerError)
			case "Overloaded":
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]interface{}{"cod": 503, "message": "service overloaded"})
			case "NoCoords":
				json.NewEncoder(w).Encode(map[string]interface{}{"name": "NoCoords"})
			case "MalformedJSON":
				w.Write([]byte("{malformed json"))
			case "Sparse":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"name":  "Sparse",
					"coord": map[string]interface{}{"lat": 1, "lon": 2},
				})
			}
		case "/onecall":
			switch query.Get("lat") {
			case "51.51":
				json.NewEncoder(w).Encode(map[string]interface{}{
					"timezone_offset": 3600,
					"hourly":          hourly(8),
					"daily":           daily(9),
				})
			case "0":
				json.NewEncoder(w).Encode(map[string]interface{}{"timezone_offset": 0})
			case "401":
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{"cod": 401, "message": "Invalid API key"})
			default:
				w.WriteHeader(http.StatusBadGateway)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	s.client = providers.NewOpenWeatherClient(providers.Options{
		BaseURL: s.server.URL + "/",
		APIKey:  "test_key",
		Timeout: 2 * time.Second,
	})
	s.ctx = context.Background()
}

func (s *OpenWeatherClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenWeatherClientTestSuite) args() url.Values {
	return s.lastArgs.Load().(url.Values)
}

func (s *OpenWeatherClientTestSuite) requireKind(err error, kind providers.Kind, message string) {
	s.Require().Error(err)
	s.Equal(kind, providers.KindOf(err))
	s.Equal(message, providers.UserMessage(err))
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrentByCity_Success() {
	snap, err := s.client.FetchCurrent(s.ctx, providers.ByCity("  London "), format.Metric)
	s.Require().NoError(err)

	s.Equal("/weather", s.lastPath.Load())
	s.Equal("London", s.args().Get("q"))
	s.Equal("test_key", s.args().Get("appid"))
	s.Equal("metric", s.args().Get("units"))

	s.Equal("London", snap.Name)
	s.Equal(providers.Coordinates{Lat: 51.51, Lon: -0.13}, snap.Coordinates)
	s.Require().NotNil(snap.ConditionCode)
	s.Equal(801, *snap.ConditionCode)
	s.Equal("Clouds", snap.ConditionLabel)
	s.Equal(15.2, *snap.Temperature)
	s.Equal(14.1, *snap.FeelsLike)
	s.Equal(72.0, *snap.Humidity)
	s.Equal(4.6, *snap.WindSpeed)
	s.Equal(format.Metric, snap.Units)
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrentByCoordinates_Success() {
	snap, err := s.client.FetchCurrent(s.ctx, providers.ByCoordinates(51.5085, -0.1257), format.Imperial)
	s.Require().NoError(err)

	s.Equal("51.5085", s.args().Get("lat"))
	s.Equal("-0.1257", s.args().Get("lon"))
	s.Empty(s.args().Get("q"))
	s.Equal("imperial", s.args().Get("units"))
	s.Equal("London", snap.Name)
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_SparseFieldsStayNil() {
	snap, err := s.client.FetchCurrent(s.ctx, providers.ByCity("Sparse"), format.Metric)
	s.Require().NoError(err)

	s.Nil(snap.ConditionCode)
	s.Empty(snap.ConditionLabel)
	s.Nil(snap.Temperature)
	s.Nil(snap.FeelsLike)
	s.Nil(snap.Humidity)
	s.Nil(snap.WindSpeed)
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_BlankCityMakesNoRequest() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("   "), format.Metric)

	s.requireKind(err, providers.KindInvalidInput, providers.MsgBlankCity)
	s.Equal(int32(0), s.hits.Load())
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_NotFoundPropagatesMessage() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("Nowhere"), format.Metric)

	s.requireKind(err, providers.KindNotFound, "city not found")
	s.Contains(err.Error(), "status code: 404")
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_ErrorWithoutMessageIsGeneric() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("BrokenUpstream"), format.Metric)

	s.requireKind(err, providers.KindUpstreamError, `City "BrokenUpstream" not found`)
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_ServerErrorWithMessage() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("Overloaded"), format.Metric)

	s.requireKind(err, providers.KindUpstreamError, "service overloaded")
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_MissingCoordinates() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("NoCoords"), format.Metric)

	s.requireKind(err, providers.KindUpstreamError, providers.MsgUnexpectedResponse)
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_MalformedJSON() {
	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("MalformedJSON"), format.Metric)

	s.requireKind(err, providers.KindUpstreamError, providers.MsgUnexpectedResponse)
	s.Contains(err.Error(), "malformed JSON")
}

func (s *OpenWeatherClientTestSuite) TestFetchCurrent_TransportError() {
	s.server.Close()

	_, err := s.client.FetchCurrent(s.ctx, providers.ByCity("London"), format.Metric)

	s.requireKind(err, providers.KindTransportError, providers.MsgTransport)
	s.Contains(err.Error(), "request failed")
}

func (s *OpenWeatherClientTestSuite) TestFetchForecast_TruncatesAndOrders() {
	bundle, err := s.client.FetchForecast(s.ctx, 51.51, -0.13, format.Metric)
	s.Require().NoError(err)

	s.Equal("/onecall", s.lastPath.Load())
	s.Equal("minutely,alerts", s.args().Get("exclude"))
	s.Equal("metric", s.args().Get("units"))

	s.Equal(3600, bundle.TimezoneOffset)
	s.Len(bundle.Hourly, providers.MaxHourlyPoints)
	s.Len(bundle.Daily, providers.MaxDailyPoints)
	s.Equal(time.Unix(1700000000, 0).UTC(), bundle.Hourly[0].Time)
	s.True(bundle.Hourly[0].Time.Before(bundle.Hourly[5].Time))
	s.Equal(500, *bundle.Hourly[0].ConditionCode)
	s.Equal(10.4, *bundle.Hourly[0].Temperature)
	s.Equal(20.6, *bundle.Daily[0].Max)
	s.Equal(8.2, *bundle.Daily[0].Min)
}

func (s *OpenWeatherClientTestSuite) TestFetchForecast_AbsentArraysAreEmpty() {
	bundle, err := s.client.FetchForecast(s.ctx, 0, 0, format.Metric)
	s.Require().NoError(err)

	s.Empty(bundle.Hourly)
	s.Empty(bundle.Daily)
}

func (s *OpenWeatherClientTestSuite) TestFetchForecast_Errors() {
	_, err := s.client.FetchForecast(s.ctx, 401, 0, format.Metric)
	s.requireKind(err, providers.KindNotFound, "Invalid API key")

	_, err = s.client.FetchForecast(s.ctx, 12, 0, format.Metric)
	s.requireKind(err, providers.KindUpstreamError, providers.MsgForecastFailed)
}

func (s *OpenWeatherClientTestSuite) TestRateLimitRespectsContext() {
	client := providers.NewOpenWeatherClient(providers.Options{
		BaseURL:           s.server.URL,
		APIKey:            "test_key",
		RequestsPerSecond: 0.001,
		Burst:             1,
	})

	_, err := client.FetchCurrent(s.ctx, providers.ByCity("London"), format.Metric)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	_, err = client.FetchCurrent(ctx, providers.ByCity("London"), format.Imperial)
	s.requireKind(err, providers.KindTransportError, providers.MsgTransport)
	s.Contains(err.Error(), "rate limit")
	s.Equal(int32(1), s.hits.Load())
}

func (s *OpenWeatherClientTestSuite) TestSharedExchangeSurvivesFirstCallerCancel() {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	var hits atomic.Int32

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		arrived <- struct{}{}
		<-release
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":  "London",
			"coord": map[string]interface{}{"lat": 51.51, "lon": -0.13},
		})
	}))
	defer slow.Close()
	defer func() {
		select {
		case <-release:
		default:
			close(release)
		}
	}()

	client := providers.NewOpenWeatherClient(providers.Options{
		BaseURL: slow.URL,
		APIKey:  "test_key",
		Timeout: 5 * time.Second,
	})

	firstCtx, cancelFirst := context.WithCancel(s.ctx)
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.FetchCurrent(firstCtx, providers.ByCity("London"), format.Metric)
		firstErr <- err
	}()
	<-arrived

	type result struct {
		snap providers.WeatherSnapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		snap, err := client.FetchCurrent(s.ctx, providers.ByCity("London"), format.Metric)
		second <- result{snap: snap, err: err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	s.requireKind(err, providers.KindTransportError, providers.MsgTransport)
	s.ErrorIs(err, context.Canceled)

	close(release)
	res := <-second
	s.Require().NoError(res.err)
	s.Equal("London", res.snap.Name)
	s.Equal(int32(1), hits.Load())
}

func TestOpenWeatherClientSuite(t *testing.T) {
	suite.Run(t, new(OpenWeatherClientTestSuite))
}
