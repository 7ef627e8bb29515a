package timing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
)

// Fixed phase ratios of a lap's duration.
const (
	StartGlideRatio = 0.10
	EndGlideRatio   = 0.05
	TurnRatio       = 0.03 // only for laps with index > 0
)

// maxGlideShare caps the combined glide distances as a fraction of the
// travel distance; longer configured glides are scaled down proportionally.
const maxGlideShare = 0.6

var (
	// ErrInvalidPool is returned when the pool geometry leaves no room to swim.
	ErrInvalidPool = errors.New("invalid pool geometry")
	// ErrNonFinite is returned when planning produced NaN or Inf values.
	ErrNonFinite = errors.New("non-finite timing value")
)

// Pool is the lane geometry and clip metadata a plan is computed against.
type Pool struct {
	LengthM             float64
	WallOffsetM         float64
	StartGlideDistanceM float64
	EndGlideDistanceM   float64
	NominalCycleSeconds float64 // clip time of one stroke cycle
}

// PoolFromTuning builds a Pool from a loaded tuning config.
func PoolFromTuning(cfg *config.SwimTuning) Pool {
	return Pool{
		LengthM:             cfg.GetPoolLengthM(),
		WallOffsetM:         cfg.GetWallOffsetM(),
		StartGlideDistanceM: cfg.GetStartGlideDistanceM(),
		EndGlideDistanceM:   cfg.GetEndGlideDistanceM(),
		NominalCycleSeconds: cfg.GetNominalCycleSeconds(),
	}
}

// Validate checks the geometry leaves a positive travel distance.
func (p Pool) Validate() error {
	for _, v := range []float64{p.LengthM, p.WallOffsetM, p.StartGlideDistanceM, p.EndGlideDistanceM, p.NominalCycleSeconds} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidPool)
		}
	}
	if p.WallOffsetM < 0 || p.StartGlideDistanceM < 0 || p.EndGlideDistanceM < 0 {
		return fmt.Errorf("%w: negative offset or glide distance", ErrInvalidPool)
	}
	if p.TravelM() <= 0 {
		return fmt.Errorf("%w: pool length %g leaves no travel with wall offset %g", ErrInvalidPool, p.LengthM, p.WallOffsetM)
	}
	if p.NominalCycleSeconds <= 0 {
		return fmt.Errorf("%w: nominal cycle must be positive, got %g", ErrInvalidPool, p.NominalCycleSeconds)
	}
	return nil
}

// NearWall is the lane coordinate of the start wall.
func (p Pool) NearWall() float64 { return p.WallOffsetM }

// FarWall is the lane coordinate of the turning wall.
func (p Pool) FarWall() float64 { return p.LengthM - p.WallOffsetM }

// TravelM is the wall-to-wall distance a swimmer covers in one lap.
func (p Pool) TravelM() float64 { return p.FarWall() - p.NearWall() }

// Plan is the timing schedule of a single lap. It is a pure function of the
// lap descriptor and the pool; equal inputs always produce equal plans.
type Plan struct {
	LapIndex int
	Strokes  int
	IsRest   bool

	Duration float64 // seconds, equals the sum of the four phase durations

	TurnDuration float64

	StartGlideDuration float64
	StartGlideDistance float64
	StartGlideSpeed    float64

	SwimDuration float64
	SwimDistance float64
	SwimSpeed    float64

	EndGlideDuration float64
	EndGlideDistance float64
	EndGlideSpeed    float64

	TravelDistance float64

	// AnimationRate is the playback rate that makes the stroke clip complete
	// exactly Strokes cycles within SwimDuration.
	AnimationRate    float64
	StrokesPerSecond float64
	// CadenceSPM is the derived stroke rate (strokes/min) during the swim phase.
	CadenceSPM float64
}

// PlanLap partitions a lap into its phases. The lap is validated first; a
// rejected lap yields a *lap.ConfigError.
func PlanLap(l lap.Descriptor, pool Pool) (Plan, error) {
	if err := l.Validate(); err != nil {
		return Plan{}, err
	}
	if err := pool.Validate(); err != nil {
		return Plan{}, err
	}

	turnRatio := 0.0
	if l.Index > 0 {
		turnRatio = TurnRatio
	}

	d := l.DurationSeconds
	plan := Plan{
		LapIndex:           l.Index,
		Strokes:            l.Strokes,
		IsRest:             l.IsRest,
		Duration:           d,
		TurnDuration:       turnRatio * d,
		StartGlideDuration: StartGlideRatio * d,
		EndGlideDuration:   EndGlideRatio * d,
		TravelDistance:     pool.TravelM(),
	}
	plan.SwimDuration = d - plan.TurnDuration - plan.StartGlideDuration - plan.EndGlideDuration

	startGlide, endGlide := pool.StartGlideDistanceM, pool.EndGlideDistanceM
	if limit := maxGlideShare * plan.TravelDistance; startGlide+endGlide > limit {
		scale := limit / (startGlide + endGlide)
		startGlide *= scale
		endGlide *= scale
	}
	plan.StartGlideDistance = startGlide
	plan.EndGlideDistance = endGlide
	plan.SwimDistance = plan.TravelDistance - startGlide - endGlide

	plan.StartGlideSpeed = speed(plan.StartGlideDistance, plan.StartGlideDuration)
	plan.SwimSpeed = speed(plan.SwimDistance, plan.SwimDuration)
	plan.EndGlideSpeed = speed(plan.EndGlideDistance, plan.EndGlideDuration)

	if plan.SwimDuration > 0 {
		plan.StrokesPerSecond = float64(l.Strokes) / plan.SwimDuration
		plan.AnimationRate = float64(l.Strokes) * pool.NominalCycleSeconds / plan.SwimDuration
		plan.CadenceSPM = plan.StrokesPerSecond * 60
	}

	if err := plan.check(); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// speed returns distance/duration, or 0 for a zero-length phase.
func speed(distance, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return distance / duration
}

func (p Plan) check() error {
	values := []float64{
		p.Duration, p.TurnDuration,
		p.StartGlideDuration, p.StartGlideDistance, p.StartGlideSpeed,
		p.SwimDuration, p.SwimDistance, p.SwimSpeed,
		p.EndGlideDuration, p.EndGlideDistance, p.EndGlideSpeed,
		p.AnimationRate, p.StrokesPerSecond,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("lap %d: %w", p.LapIndex, ErrNonFinite)
		}
	}
	sum := p.TurnDuration + p.StartGlideDuration + p.SwimDuration + p.EndGlideDuration
	if !scalar.EqualWithinAbs(sum, p.Duration, p.tolerance()) {
		return fmt.Errorf("lap %d: phase durations sum to %g, want %g: %w", p.LapIndex, sum, p.Duration, ErrNonFinite)
	}
	return nil
}

// tolerance is the time slack used for boundary comparisons.
func (p Plan) tolerance() float64 {
	return 1e-9 * math.Max(1, p.Duration)
}

// Boundaries returns the lap-local end times of the turn, start glide, swim
// and end glide phases.
func (p Plan) Boundaries() [4]float64 {
	turnEnd := p.TurnDuration
	startGlideEnd := turnEnd + p.StartGlideDuration
	swimEnd := startGlideEnd + p.SwimDuration
	return [4]float64{turnEnd, startGlideEnd, swimEnd, p.Duration}
}
