package lap

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLap is wrapped by every ConfigError returned from Validate.
var ErrInvalidLap = errors.New("invalid lap descriptor")

// ConfigError describes why a lap descriptor was rejected at lap entry.
type ConfigError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lap %d: %s %s", e.Index, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidLap.
func (e *ConfigError) Unwrap() error { return ErrInvalidLap }

// Descriptor is one wall-to-wall traversal (or rest interval) as recorded by
// the swimmer's device. Descriptors are immutable values; the motion core
// never writes to them.
type Descriptor struct {
	Index           int        `json:"index"`
	DurationSeconds float64    `json:"duration_seconds"`
	Strokes         int        `json:"strokes"`
	StrokeType      StrokeType `json:"stroke_type"`
	Cadence         *float64   `json:"cadence,omitempty"` // strokes per minute, as recorded
	IsRest          bool       `json:"is_rest"`
	IsLastLap       bool       `json:"is_last_lap"`
}

// Validate checks the descriptor at lap entry. The returned error is a
// *ConfigError wrapping ErrInvalidLap.
func (d Descriptor) Validate() error {
	if d.Index < 0 {
		return &ConfigError{Index: d.Index, Field: "index", Reason: "must be non-negative"}
	}
	if math.IsNaN(d.DurationSeconds) || math.IsInf(d.DurationSeconds, 0) {
		return &ConfigError{Index: d.Index, Field: "duration_seconds", Reason: "must be finite"}
	}
	if d.DurationSeconds <= 0 {
		return &ConfigError{
			Index:  d.Index,
			Field:  "duration_seconds",
			Reason: fmt.Sprintf("must be positive, got %g", d.DurationSeconds),
		}
	}
	if d.Strokes < 0 {
		return &ConfigError{
			Index:  d.Index,
			Field:  "strokes",
			Reason: fmt.Sprintf("must be non-negative, got %d", d.Strokes),
		}
	}
	if d.Cadence != nil && (*d.Cadence < 0 || math.IsNaN(*d.Cadence) || math.IsInf(*d.Cadence, 0)) {
		return &ConfigError{Index: d.Index, Field: "cadence", Reason: "must be a finite non-negative rate"}
	}
	return nil
}

// Stroke returns the descriptor's stroke type with the freestyle fallback
// applied.
func (d Descriptor) Stroke() StrokeType {
	return d.StrokeType.Normalize()
}
