// Package units provides shared constants and conversions for swim speeds,
// paces and stroke rates.
package units

import (
	"fmt"
	"math"
	"time"
)

// Speed unit constants
const (
	MPS         = "mps"
	KMPH        = "kmph"
	KPH         = "kph"
	Per100M     = "per_100m" // pace: time per 100 metres
	Per100Yards = "per_100yd"
)

// MetresPerYard is the exact international yard.
const MetresPerYard = 0.9144

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, KMPH, KPH, Per100M, Per100Yards}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, kmph, kph, per_100m, per_100yd"
}

// ConvertSpeed converts a speed from metres per second to the target units.
// Pace units return seconds per 100 m (or 100 yd); a zero speed has no pace
// and returns 0.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case KMPH, KPH:
		return speedMPS * 3.6
	case Per100M:
		if speedMPS <= 0 {
			return 0
		}
		return 100 / speedMPS
	case Per100Yards:
		if speedMPS <= 0 {
			return 0
		}
		return 100 * MetresPerYard / speedMPS
	default:
		return speedMPS
	}
}

// PacePer100m returns the time taken to cover 100 m at the pace of a length
// of distanceM metres swum in seconds.
func PacePer100m(seconds, distanceM float64) time.Duration {
	if distanceM <= 0 || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * 100 / distanceM * float64(time.Second))
}

// StrokeRate returns strokes per minute.
func StrokeRate(strokes int, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(strokes) / seconds * 60
}

// FormatPace renders a pace as m:ss.t, e.g. "1:52.4".
func FormatPace(pace time.Duration) string {
	if pace <= 0 {
		return "-:--"
	}
	tenths := int64(math.Round(pace.Seconds() * 10))
	minutes := tenths / 600
	rest := tenths % 600
	return fmt.Sprintf("%d:%02d.%d", minutes, rest/10, rest%10)
}
