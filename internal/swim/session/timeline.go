package session

import (
	"errors"
	"sort"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/timing"
)

// ErrEmptyTimeline is returned for a swimmer without laps.
var ErrEmptyTimeline = errors.New("timeline has no laps")

// Timeline is an immutable, validated lap sequence.
type Timeline struct {
	laps    []lap.Descriptor
	starts  []float64
	orients []motion.Orientation
	total   float64
}

// NewTimeline validates laps and precomputes start times and entry
// orientations. Lap indices must run 0..n-1 in order. The final lap is
// always treated as the last lap; IsLastLap on an earlier lap is rejected.
func NewTimeline(laps []lap.Descriptor, pool timing.Pool) (*Timeline, error) {
	if len(laps) == 0 {
		return nil, ErrEmptyTimeline
	}
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	tl := &Timeline{
		laps:    make([]lap.Descriptor, len(laps)),
		starts:  make([]float64, len(laps)),
		orients: make([]motion.Orientation, len(laps)),
	}
	copy(tl.laps, laps)

	for i, l := range tl.laps {
		if l.Index != i {
			return nil, &lap.ConfigError{Index: l.Index, Field: "index", Reason: "out of sequence"}
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if l.IsLastLap && i != len(laps)-1 {
			return nil, &lap.ConfigError{Index: l.Index, Field: "is_last_lap", Reason: "set before the final lap"}
		}

		tl.starts[i] = tl.total
		tl.total += l.DurationSeconds
		if i == 0 {
			tl.orients[i] = motion.InitialOrientation(pool)
		} else {
			tl.orients[i] = motion.NextOrientation(tl.orients[i-1], tl.laps[i-1], pool)
		}
	}
	tl.laps[len(laps)-1].IsLastLap = true
	return tl, nil
}

// Len returns the number of laps.
func (t *Timeline) Len() int { return len(t.laps) }

// Lap returns lap i.
func (t *Timeline) Lap(i int) lap.Descriptor { return t.laps[i] }

// Laps returns a copy of the lap sequence.
func (t *Timeline) Laps() []lap.Descriptor {
	out := make([]lap.Descriptor, len(t.laps))
	copy(out, t.laps)
	return out
}

// Start returns the session time at which lap i begins.
func (t *Timeline) Start(i int) float64 { return t.starts[i] }

// Orientation returns the orientation lap i is entered with.
func (t *Timeline) Orientation(i int) motion.Orientation { return t.orients[i] }

// Duration returns the total session length in seconds.
func (t *Timeline) Duration() float64 { return t.total }

// LapAt returns the lap active at session time seconds and the lap-local
// time within it. Times past the end resolve to the end of the final lap.
func (t *Timeline) LapAt(seconds float64) (index int, local float64) {
	if seconds <= 0 {
		return 0, 0
	}
	if seconds >= t.total {
		last := len(t.laps) - 1
		return last, t.laps[last].DurationSeconds
	}
	// First lap starting after seconds, minus one.
	i := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > seconds }) - 1
	return i, seconds - t.starts[i]
}
