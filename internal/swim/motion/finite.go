package motion

import (
	"fmt"
	"math"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
)

// strictFinite makes a non-finite snapshot panic instead of warning.
var strictFinite bool

// SetStrictFinite switches the non-finite guard to panicking. Test binaries
// turn it on so contract violations fail loudly.
func SetStrictFinite(on bool) { strictFinite = on }

// checkFinite reports whether every continuous field of s is finite. A
// violation is a programming error: it panics in strict mode and is logged as
// a warning otherwise, in which case the caller keeps its previous snapshot.
func checkFinite(s State) bool {
	fields := [...]struct {
		name string
		v    float64
	}{
		{"position", s.Position},
		{"lane_offset", s.LaneOffset},
		{"speed", s.Speed},
		{"stroke_phase", s.StrokePhase},
		{"elapsed", s.Elapsed},
		{"lap_progress", s.LapProgress},
		{"pitch", s.Pitch},
		{"yaw", s.Yaw},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			msg := fmt.Sprintf("swimmer %s lap %d: non-finite %s (%v) in phase %s",
				s.SwimmerID, s.LapIndex, f.name, f.v, s.Phase)
			if strictFinite {
				panic(msg)
			}
			monitoring.Warnf("%s", msg)
			return false
		}
	}
	return true
}
