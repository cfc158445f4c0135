package providers

import (
	"time"

	"ulascansenturk/weather-dashboard/internal/format"
)

const (
	MaxHourlyPoints = 6
	MaxDailyPoints  = 7
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query selects a current-conditions lookup by city name or by coordinates.
type Query struct {
	City        string
	Coordinates *Coordinates
}

func ByCity(name string) Query {
	return Query{City: name}
}

func ByCoordinates(lat, lon float64) Query {
	return Query{Coordinates: &Coordinates{Lat: lat, Lon: lon}}
}

// WeatherSnapshot is the normalized result of a current-conditions lookup.
// Pointer fields are nil when the upstream omitted them.
type WeatherSnapshot struct {
	Name           string          `json:"name"`
	Coordinates    Coordinates     `json:"coordinates"`
	ConditionCode  *int            `json:"condition_code,omitempty"`
	ConditionLabel string          `json:"condition_label,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	FeelsLike      *float64        `json:"feels_like,omitempty"`
	Humidity       *float64        `json:"humidity,omitempty"`
	WindSpeed      *float64        `json:"wind_speed,omitempty"`
	Units          format.UnitMode `json:"units"`
}

type HourlyPoint struct {
	Time          time.Time `json:"time"`
	ConditionCode *int      `json:"condition_code,omitempty"`
	Temperature   *float64  `json:"temperature,omitempty"`
}

type DailyPoint struct {
	Time          time.Time `json:"time"`
	ConditionCode *int      `json:"condition_code,omitempty"`
	Max           *float64  `json:"max,omitempty"`
	Min           *float64  `json:"min,omitempty"`
}

// ForecastBundle holds up to MaxHourlyPoints hourly and MaxDailyPoints daily
// points in upstream order. Either sequence may be empty.
type ForecastBundle struct {
	TimezoneOffset int             `json:"timezone_offset"`
	Hourly         []HourlyPoint   `json:"hourly"`
	Daily          []DailyPoint    `json:"daily"`
	Units          format.UnitMode `json:"units"`
}

// Location returns the fixed zone of the forecast's location.
func (b ForecastBundle) Location() *time.Location {
	return time.FixedZone("", b.TimezoneOffset)
}

type conditionPayload struct {
	ID   *int   `json:"id"`
	Main string `json:"main"`
}

type currentResponse struct {
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []conditionPayload `json:"weather"`
	Main    *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	TimezoneOffset int `json:"timezone_offset"`
	Hourly         []struct {
		Dt      int64              `json:"dt"`
		Temp    *float64           `json:"temp"`
		Weather []conditionPayload `json:"weather"`
	} `json:"hourly"`
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp *struct {
			Max *float64 `json:"max"`
			Min *float64 `json:"min"`
		} `json:"temp"`
		Weather []conditionPayload `json:"weather"`
	} `json:"daily"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func firstCondition(conditions []conditionPayload) (*int, string) {
	if len(conditions) == 0 {
		return nil, ""
	}
	return conditions[0].ID, conditions[0].Main
}

func (r currentResponse) snapshot(units format.UnitMode) WeatherSnapshot {
	code, label := firstCondition(r.Weather)
	snap := WeatherSnapshot{
		Name:           r.Name,
		ConditionCode:  code,
		ConditionLabel: label,
		Units:          units,
	}
	if r.Coord != nil {
		snap.Coordinates = Coordinates{Lat: r.Coord.Lat, Lon: r.Coord.Lon}
	}
	if r.Main != nil {
		snap.Temperature = r.Main.Temp
		snap.FeelsLike = r.Main.FeelsLike
		snap.Humidity = r.Main.Humidity
	}
	if r.Wind != nil {
		snap.WindSpeed = r.Wind.Speed
	}
	return snap
}

func (r forecastResponse) bundle(units format.UnitMode) ForecastBundle {
	b := ForecastBundle{
		TimezoneOffset: r.TimezoneOffset,
		Hourly:         make([]HourlyPoint, 0, MaxHourlyPoints),
		Daily:          make([]DailyPoint, 0, MaxDailyPoints),
		Units:          units,
	}

	for i, h := range r.Hourly {
		if i == MaxHourlyPoints {
			break
		}
		code, _ := firstCondition(h.Weather)
		b.Hourly = append(b.Hourly, HourlyPoint{
			Time:          time.Unix(h.Dt, 0).UTC(),
			ConditionCode: code,
			Temperature:   h.Temp,
		})
	}

	for i, d := range r.Daily {
		if i == MaxDailyPoints {
			break
		}
		code, _ := firstCondition(d.Weather)
		point := DailyPoint{
			Time:          time.Unix(d.Dt, 0).UTC(),
			ConditionCode: code,
		}
		if d.Temp != nil {
			point.Max = d.Temp.Max
			point.Min = d.Temp.Min
		}
		b.Daily = append(b.Daily, point)
	}

	return b
}
