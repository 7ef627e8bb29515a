package timing

import "math"

// Segment is the part of a lap's time line a given elapsed time falls into.
type Segment uint8

const (
	SegmentTurn Segment = iota
	SegmentStartGlide
	SegmentSwim
	SegmentEndGlide
	SegmentArrived // elapsed has reached the lap duration; swimmer is at the wall
)

func (s Segment) String() string {
	switch s {
	case SegmentTurn:
		return "turn"
	case SegmentStartGlide:
		return "start_glide"
	case SegmentSwim:
		return "swim"
	case SegmentEndGlide:
		return "end_glide"
	case SegmentArrived:
		return "arrived"
	}
	return "unknown"
}

// Sample is the resolved state of a lap at one lap-local instant.
type Sample struct {
	Segment        Segment
	Elapsed        float64 // clamped to [0, Duration]
	SegmentElapsed float64

	// TurnProgress runs 0..1 across the turn and stays 1 afterwards. Laps
	// without a turn report 1 throughout.
	TurnProgress float64

	// Distance travelled away from the start wall, in [0, TravelDistance].
	Distance float64

	StrokeCount int
	StrokePhase float64 // cyclic 0..1, only advances while swimming
}

// Resolve maps a lap-local elapsed time onto the plan. It is the only place
// phase boundaries and per-phase kinematics are evaluated; the motion
// controller calls it from both Advance and Seek.
//
// Phase speeds are distance/duration, so reaching a phase's time boundary is
// the same event as covering its distance. Boundaries are compared with a
// small tolerance so accumulated tick error cannot leave a swimmer one frame
// short of a wall.
func (p Plan) Resolve(elapsed float64) Sample {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}
	if elapsed > p.Duration {
		elapsed = p.Duration
	}

	b := p.Boundaries()
	tol := p.tolerance()
	s := Sample{Elapsed: elapsed, TurnProgress: 1}

	switch {
	case p.TurnDuration > 0 && elapsed < b[0]-tol:
		s.Segment = SegmentTurn
		s.SegmentElapsed = elapsed
		s.TurnProgress = elapsed / p.TurnDuration

	case elapsed < b[1]-tol:
		s.Segment = SegmentStartGlide
		s.SegmentElapsed = math.Max(0, elapsed-b[0])
		s.Distance = math.Min(p.StartGlideSpeed*s.SegmentElapsed, p.StartGlideDistance)

	case elapsed < b[2]-tol:
		s.Segment = SegmentSwim
		s.SegmentElapsed = math.Max(0, elapsed-b[1])
		s.Distance = p.StartGlideDistance + math.Min(p.SwimSpeed*s.SegmentElapsed, p.SwimDistance)
		s.StrokeCount, s.StrokePhase = p.strokesAt(s.SegmentElapsed)

	case elapsed < b[3]-tol:
		s.Segment = SegmentEndGlide
		s.SegmentElapsed = math.Max(0, elapsed-b[2])
		s.Distance = p.StartGlideDistance + p.SwimDistance +
			math.Min(p.EndGlideSpeed*s.SegmentElapsed, p.EndGlideDistance)
		s.StrokeCount = p.Strokes

	default:
		s.Segment = SegmentArrived
		s.Elapsed = p.Duration
		s.SegmentElapsed = 0
		s.Distance = p.TravelDistance
		s.StrokeCount = p.Strokes
	}

	if s.Distance > p.TravelDistance {
		s.Distance = p.TravelDistance
	}
	return s
}

// strokesAt returns the completed stroke count and the phase within the
// current cycle after swimElapsed seconds of swimming. The count is floored
// and never exceeds the lap's stroke total.
func (p Plan) strokesAt(swimElapsed float64) (int, float64) {
	if p.Strokes == 0 || p.StrokesPerSecond <= 0 {
		return 0, 0
	}
	cycles := swimElapsed * p.StrokesPerSecond
	whole := math.Floor(cycles + 1e-9)
	count := int(whole)
	if count >= p.Strokes {
		return p.Strokes, 0
	}
	phase := cycles - whole
	if phase < 0 {
		phase = 0
	}
	return count, phase
}

// ElapsedAt converts a normalised lap progress in [0,1] to lap-local seconds.
func (p Plan) ElapsedAt(progress float64) float64 {
	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return progress * p.Duration
}

// Progress converts lap-local seconds to a normalised progress in [0,1].
func (p Plan) Progress(elapsed float64) float64 {
	if p.Duration <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, elapsed/p.Duration))
}
