package lap

import "strings"

// StrokeType identifies the swimming stroke performed during a lap.
type StrokeType string

const (
	Freestyle    StrokeType = "freestyle"
	Breaststroke StrokeType = "breaststroke"
	Backstroke   StrokeType = "backstroke"
	Butterfly    StrokeType = "butterfly"
)

// StrokeTypes lists every supported stroke in display order.
var StrokeTypes = []StrokeType{Freestyle, Breaststroke, Backstroke, Butterfly}

// IsValid reports whether s is one of the four supported strokes.
func (s StrokeType) IsValid() bool {
	switch s {
	case Freestyle, Breaststroke, Backstroke, Butterfly:
		return true
	}
	return false
}

// Normalize returns s, or Freestyle when s is not a supported stroke.
// The fallback is cosmetic: stroke type only selects clips and splash
// profiles, never timing.
func (s StrokeType) Normalize() StrokeType {
	if s.IsValid() {
		return s
	}
	return Freestyle
}

// ParseStrokeType maps a free-form stroke name onto a StrokeType. Names are
// case-insensitive and accept the common aliases used by watch exports
// ("FREE", "BACK", "BREAST", "FLY"). The boolean is false when the input
// was not recognised and the freestyle default was substituted.
func ParseStrokeType(name string) (StrokeType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "freestyle", "free", "crawl", "front_crawl":
		return Freestyle, true
	case "breaststroke", "breast":
		return Breaststroke, true
	case "backstroke", "back":
		return Backstroke, true
	case "butterfly", "fly":
		return Butterfly, true
	}
	return Freestyle, false
}
