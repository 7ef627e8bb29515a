package session

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/units"
)

// LapSummary holds the derived metrics of one lap.
type LapSummary struct {
	Index           int
	Stroke          lap.StrokeType
	IsRest          bool
	DurationSeconds float64
	DistanceM       float64
	Strokes         int
	Pace            time.Duration // per 100 m; zero for rest laps
	StrokeRate      float64       // strokes per minute; recorded cadence wins
}

// Summary aggregates a swimmer's laps.
type Summary struct {
	Name           string
	Laps           []LapSummary
	Lengths        int
	DistanceM      float64
	SwimSeconds    float64
	RestSeconds    float64
	MeanPace       time.Duration
	MeanStrokeRate float64
	StrokesByType  map[lap.StrokeType]int
}

// Summarize computes per-lap and session metrics for a lap sequence swum in
// a pool of poolLengthM metres.
func Summarize(name string, laps []lap.Descriptor, poolLengthM float64) Summary {
	sum := Summary{
		Name:          name,
		Laps:          make([]LapSummary, 0, len(laps)),
		StrokesByType: make(map[lap.StrokeType]int),
	}

	var paces, rates []float64
	for _, l := range laps {
		ls := LapSummary{
			Index:           l.Index,
			Stroke:          l.Stroke(),
			IsRest:          l.IsRest,
			DurationSeconds: l.DurationSeconds,
			Strokes:         l.Strokes,
		}
		if l.IsRest {
			sum.RestSeconds += l.DurationSeconds
			sum.Laps = append(sum.Laps, ls)
			continue
		}

		ls.DistanceM = poolLengthM
		ls.Pace = units.PacePer100m(l.DurationSeconds, poolLengthM)
		ls.StrokeRate = units.StrokeRate(l.Strokes, l.DurationSeconds)
		if l.Cadence != nil {
			ls.StrokeRate = *l.Cadence
		}

		sum.Lengths++
		sum.DistanceM += poolLengthM
		sum.SwimSeconds += l.DurationSeconds
		sum.StrokesByType[ls.Stroke] += l.Strokes
		paces = append(paces, ls.Pace.Seconds())
		rates = append(rates, ls.StrokeRate)
		sum.Laps = append(sum.Laps, ls)
	}

	if len(paces) > 0 {
		sum.MeanPace = time.Duration(stat.Mean(paces, nil) * float64(time.Second))
		sum.MeanStrokeRate = stat.Mean(rates, nil)
	}
	return sum
}

// Summaries returns a summary per swimmer, in lane order.
func (s *Session) Summaries() []Summary {
	out := make([]Summary, 0, len(s.swimmers))
	for _, sw := range s.swimmers {
		out = append(out, Summarize(sw.name, sw.timeline.laps, s.pool.LengthM))
	}
	return out
}
