package format

import (
	"fmt"
	"math"
	"strings"
)

// Placeholder is shown wherever a value is absent.
const Placeholder = "--"

type UnitMode string

const (
	Metric   UnitMode = "metric"
	Imperial UnitMode = "imperial"
)

// ParseUnitMode accepts the upstream unit tokens, case-insensitively.
func ParseUnitMode(s string) (UnitMode, error) {
	switch UnitMode(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown unit mode %q", s)
	}
}

func (u UnitMode) TemperatureSuffix() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

func (u UnitMode) WindUnit() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}

type Icon string

const (
	IconUnknown      Icon = ""
	IconThunderstorm Icon = "thunderstorm"
	IconRain         Icon = "rain"
	IconHeavyShowers Icon = "heavy-showers"
	IconSnow         Icon = "snow"
	IconAtmosphere   Icon = "atmosphere"
	IconClear        Icon = "clear"
	IconCloudy       Icon = "cloudy"
)

// ClassifyCondition maps an OpenWeatherMap condition code to an icon.
// Codes outside the known groups fall back to cloudy.
func ClassifyCondition(code int) Icon {
	switch {
	case code >= 200 && code < 300:
		return IconThunderstorm
	case code >= 300 && code < 500:
		return IconRain
	case code >= 500 && code < 600:
		return IconHeavyShowers
	case code >= 600 && code < 700:
		return IconSnow
	case code >= 700 && code < 800:
		return IconAtmosphere
	case code == 800:
		return IconClear
	default:
		return IconCloudy
	}
}

// ClassifyOptional is ClassifyCondition for a code that may be missing.
func ClassifyOptional(code *int) Icon {
	if code == nil {
		return IconCloudy
	}
	return ClassifyCondition(*code)
}

// Round rounds half away from zero.
func Round(v float64) int {
	return int(math.Round(v))
}

// maxDisplayable bounds values that still convert to int exactly.
const maxDisplayable = 1 << 53

func displayable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && math.Abs(*v) <= maxDisplayable
}

// RoundedValue returns the rounded value or the placeholder.
func RoundedValue(v *float64) string {
	if !displayable(v) {
		return Placeholder
	}
	return fmt.Sprintf("%d", Round(*v))
}

func FormatTemperature(v *float64, unit UnitMode) string {
	if !displayable(v) {
		return Placeholder
	}
	return fmt.Sprintf("%d%s", Round(*v), unit.TemperatureSuffix())
}
