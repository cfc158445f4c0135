// Package render maps weather data to view-models. Every function here is a
// pure mapping: the same input always yields the same view.
package render

import (
	"fmt"

	"ulascansenturk/weather-dashboard/internal/format"
	"ulascansenturk/weather-dashboard/internal/providers"
)

const (
	NoHourlyData         = "No hourly data"
	ForecastNotAvailable = "7-day forecast not available"
	ForecastFailedNotice = "7-day forecast not available for this key/plan."

	hourLayout = "15:04"
	dayLayout  = "Mon"
)

// Options carries the display state that render calls depend on.
type Options struct {
	Units format.UnitMode
}

type CurrentView struct {
	LocationLabel  string      `json:"location_label"`
	Icon           format.Icon `json:"icon"`
	Temperature    string      `json:"temperature"`
	UnitSuffix     string      `json:"unit_suffix"`
	ConditionLabel string      `json:"condition_label"`
	FeelsLikeLabel string      `json:"feels_like_label"`
	HumidityLabel  string      `json:"humidity_label"`
	WindLabel      string      `json:"wind_label"`
}

type HourlyEntry struct {
	TimeLabel        string      `json:"time_label"`
	Icon             format.Icon `json:"icon"`
	TemperatureLabel string      `json:"temperature_label"`
}

type DailyEntry struct {
	DayLabel            string      `json:"day_label"`
	Icon                format.Icon `json:"icon"`
	MaxTemperatureLabel string      `json:"max_temperature_label"`
	MinTemperatureLabel string      `json:"min_temperature_label"`
}

// HourlyStrip has either entries or a placeholder, never both.
type HourlyStrip struct {
	Entries     []HourlyEntry `json:"entries"`
	Placeholder string        `json:"placeholder,omitempty"`
}

type DailyStrip struct {
	Entries     []DailyEntry `json:"entries"`
	Placeholder string       `json:"placeholder,omitempty"`
}

type ForecastView struct {
	Hourly HourlyStrip `json:"hourly"`
	Daily  DailyStrip  `json:"daily"`
	Notice string      `json:"notice,omitempty"`
}

func orPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}

func RenderCurrent(snap providers.WeatherSnapshot, opts Options) CurrentView {
	humidity := format.RoundedValue(snap.Humidity)
	wind := format.RoundedValue(snap.WindSpeed)

	return CurrentView{
		LocationLabel:  orPlaceholder(snap.Name),
		Icon:           format.ClassifyOptional(snap.ConditionCode),
		Temperature:    format.RoundedValue(snap.Temperature),
		UnitSuffix:     opts.Units.TemperatureSuffix(),
		ConditionLabel: orPlaceholder(snap.ConditionLabel),
		FeelsLikeLabel: "Feels: " + format.FormatTemperature(snap.FeelsLike, opts.Units),
		HumidityLabel:  fmt.Sprintf("Humidity: %s%%", humidity),
		WindLabel:      fmt.Sprintf("Wind: %s %s", wind, opts.Units.WindUnit()),
	}
}

func RenderForecast(bundle providers.ForecastBundle, opts Options) ForecastView {
	loc := bundle.Location()
	view := ForecastView{
		Hourly: HourlyStrip{Entries: []HourlyEntry{}},
		Daily:  DailyStrip{Entries: []DailyEntry{}},
	}

	for i, h := range bundle.Hourly {
		if i == providers.MaxHourlyPoints {
			break
		}
		view.Hourly.Entries = append(view.Hourly.Entries, HourlyEntry{
			TimeLabel:        h.Time.In(loc).Format(hourLayout),
			Icon:             format.ClassifyOptional(h.ConditionCode),
			TemperatureLabel: format.FormatTemperature(h.Temperature, opts.Units),
		})
	}
	if len(view.Hourly.Entries) == 0 {
		view.Hourly.Placeholder = NoHourlyData
	}

	for i, d := range bundle.Daily {
		if i == providers.MaxDailyPoints {
			break
		}
		view.Daily.Entries = append(view.Daily.Entries, DailyEntry{
			DayLabel:            d.Time.In(loc).Format(dayLayout),
			Icon:                format.ClassifyOptional(d.ConditionCode),
			MaxTemperatureLabel: format.FormatTemperature(d.Max, opts.Units),
			MinTemperatureLabel: format.FormatTemperature(d.Min, opts.Units),
		})
	}
	if len(view.Daily.Entries) == 0 {
		view.Daily.Placeholder = ForecastNotAvailable
	}

	return view
}

// ForecastUnavailable is the view shown when the forecast lookup failed.
func ForecastUnavailable() ForecastView {
	return ForecastView{
		Hourly: HourlyStrip{Entries: []HourlyEntry{}, Placeholder: NoHourlyData},
		Daily:  DailyStrip{Entries: []DailyEntry{}, Placeholder: ForecastNotAvailable},
		Notice: ForecastFailedNotice,
	}
}
