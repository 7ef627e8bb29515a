package motion

import (
	"math"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/timing"
)

// DebugCollector interface for motion instrumentation. Allows decoupling
// from the debug package.
type DebugCollector interface {
	IsEnabled() bool
	RecordTransition(swimmerID uuid.UUID, lapIndex int, from, to string, elapsed float64)
	RecordRejectedSeek(swimmerID uuid.UUID, lapIndex int, phase string, progress float64)
}

// Config is the per-swimmer controller configuration.
type Config struct {
	Pool       timing.Pool
	Clips      Clips
	LaneOffset float64
}

// ConfigFromTuning builds a Config from a loaded tuning config.
func ConfigFromTuning(cfg *config.SwimTuning, laneOffset float64) Config {
	return Config{
		Pool:       timing.PoolFromTuning(cfg),
		Clips:      ClipsFromTuning(cfg),
		LaneOffset: laneOffset,
	}
}

// Controller owns one swimmer's motion state for the current lap.
type Controller struct {
	id  uuid.UUID
	cfg Config

	hasLap  bool
	lap     lap.Descriptor
	plan    timing.Plan
	orient  Orientation
	elapsed float64

	current    variant
	state      State
	command    Command
	poseOffset float64

	// DebugCollector captures transitions and rejected scrubs (optional).
	DebugCollector DebugCollector
}

// NewController creates a controller parked at the start wall. No lap is
// active until EnterLap or JumpTo is called.
func NewController(id uuid.UUID, cfg Config) *Controller {
	c := &Controller{
		id:      id,
		cfg:     cfg,
		orient:  InitialOrientation(cfg.Pool),
		current: waitingVariant{wall: cfg.Pool.NearWall()},
	}
	c.state = State{
		SwimmerID:  id,
		Phase:      PhaseWaiting,
		Position:   cfg.Pool.NearWall(),
		LaneOffset: cfg.LaneOffset,
		Direction:  1,
		StrokeType: lap.Freestyle,
	}
	c.command = Command{Clip: ClipWait, Mode: ModeTime, Paused: true}
	return c
}

// ID returns the owning swimmer's id.
func (c *Controller) ID() uuid.UUID { return c.id }

// Lap returns the active lap descriptor, if any.
func (c *Controller) Lap() (lap.Descriptor, bool) { return c.lap, c.hasLap }

// Plan returns the active lap's timing plan.
func (c *Controller) Plan() timing.Plan { return c.plan }

// Orientation returns the active lap's orientation.
func (c *Controller) Orientation() Orientation { return c.orient }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.current.phase() }

// State returns the latest snapshot.
func (c *Controller) State() State { return c.state }

// Command returns the latest animation command.
func (c *Controller) Command() Command { return c.command }

// Elapsed returns the lap-local time in seconds.
func (c *Controller) Elapsed() float64 { return c.elapsed }

// Done reports whether the active lap's time has fully elapsed.
func (c *Controller) Done() bool {
	return c.hasLap && c.elapsed >= c.plan.Duration-1e-9*math.Max(1, c.plan.Duration)
}

// EnterLap starts the next lap in sequence. This is the external lap-index
// increment: from WAITING it begins the TURNING phase (lap index > 0), and
// the very first lap starts with the push-off. The new lap's orientation is
// derived from the lap being left. An invalid lap is rejected and the
// current state is kept.
func (c *Controller) EnterLap(l lap.Descriptor) error {
	orient := c.orient
	if c.hasLap {
		orient = NextOrientation(c.orient, c.lap, c.cfg.Pool)
	}
	return c.begin(l, orient, 0)
}

func (c *Controller) begin(l lap.Descriptor, orient Orientation, elapsed float64) error {
	plan, err := timing.PlanLap(l, c.cfg.Pool)
	if err != nil {
		return err
	}
	c.lap = l
	c.plan = plan
	c.orient = orient
	c.hasLap = true
	c.elapsed = elapsed
	c.apply(plan.Resolve(elapsed), ModeTime, false)
	return nil
}

// Advance moves the swimmer forward by dt real seconds scaled by
// speedMultiplier. While paused only a TURNING swimmer moves, and only up to
// the end of its turn. WAITING and FINISHED never advance by themselves. A
// REST lap accrues time while playing but its pose never changes.
func (c *Controller) Advance(dt, speedMultiplier float64, isPlaying bool) (State, Command) {
	if !c.hasLap {
		return c.state, c.command
	}

	step := dt * speedMultiplier
	if !(step > 0) || math.IsInf(step, 0) {
		step = 0
	}

	switch c.current.(type) {
	case waitingVariant, finishedVariant:
		step = 0
	case turningVariant:
		if !isPlaying {
			step = math.Min(step, c.plan.TurnDuration-c.elapsed)
		}
	default:
		if !isPlaying {
			step = 0
		}
	}

	if step > 0 {
		c.elapsed = math.Min(c.elapsed+step, c.plan.Duration)
	}
	sample := c.plan.Resolve(c.elapsed)
	c.elapsed = sample.Elapsed
	c.apply(sample, ModeRate, isPlaying)
	return c.state, c.command
}

// Seek positions the swimmer at a normalised lap progress in [0,1]. The
// result is the state Advance would have produced at the same lap-local
// time. Seeking is rejected (no state change, ok=false) while the swimmer is
// TURNING or WAITING, and when the target itself would be TURNING or WAITING.
func (c *Controller) Seek(progress float64) (state State, cmd Command, ok bool) {
	if !c.hasLap {
		return c.state, c.command, false
	}

	phase := c.current.phase()
	if !phase.Scrubbable() {
		c.rejectSeek(phase, progress)
		return c.state, c.command, false
	}

	sample := c.plan.Resolve(c.plan.ElapsedAt(progress))
	if blocked, ok := seekBlocked(c.lap, sample); ok {
		c.rejectSeek(blocked, progress)
		return c.state, c.command, false
	}

	c.elapsed = sample.Elapsed
	c.apply(sample, ModeTime, false)
	return c.state, c.command, true
}

// JumpTo moves the swimmer onto lap l, reached along the timeline rather than
// by swimming into it, and positions it at progress within that lap. The
// target is resolved against l's plan first; when it falls inside the turn or
// at a WAITING rendezvous the jump is rejected and the current lap and state
// are kept.
func (c *Controller) JumpTo(l lap.Descriptor, orient Orientation, progress float64) (state State, cmd Command, ok bool, err error) {
	plan, err := timing.PlanLap(l, c.cfg.Pool)
	if err != nil {
		return c.state, c.command, false, err
	}
	sample := plan.Resolve(plan.ElapsedAt(progress))
	if blocked, ok := seekBlocked(l, sample); ok {
		if c.DebugCollector != nil && c.DebugCollector.IsEnabled() {
			c.DebugCollector.RecordRejectedSeek(c.id, l.Index, blocked.String(), progress)
		}
		return c.state, c.command, false, nil
	}

	c.lap = l
	c.plan = plan
	c.orient = orient
	c.hasLap = true
	c.elapsed = sample.Elapsed
	c.apply(sample, ModeTime, false)
	return c.state, c.command, true, nil
}

// seekBlocked reports the event phase a seek target on l would land in, if
// any. Rest laps have no event phases.
func seekBlocked(l lap.Descriptor, sample timing.Sample) (Phase, bool) {
	if l.IsRest {
		return 0, false
	}
	switch {
	case sample.Segment == timing.SegmentTurn:
		return PhaseTurning, true
	case sample.Segment == timing.SegmentArrived && !l.IsLastLap:
		return PhaseWaiting, true
	}
	return 0, false
}

// SetPoseOffset sets a caller-supplied offset along the lane axis that is
// applied only to the REST and FINISHED poses.
func (c *Controller) SetPoseOffset(dx float64) {
	c.poseOffset = dx
	if c.hasLap {
		c.apply(c.plan.Resolve(c.elapsed), c.command.Mode, !c.command.Paused)
	}
}

func (c *Controller) rejectSeek(phase Phase, progress float64) {
	if c.DebugCollector != nil && c.DebugCollector.IsEnabled() {
		c.DebugCollector.RecordRejectedSeek(c.id, c.lap.Index, phase.String(), progress)
	}
}

// apply installs the variant and snapshot for a resolved sample.
func (c *Controller) apply(sample timing.Sample, mode CommandMode, playing bool) {
	next := c.variantFor(sample)
	state := c.snapshot(sample, next)
	if !checkFinite(state) {
		return
	}

	prev := c.current.phase()
	if prev != next.phase() && c.DebugCollector != nil && c.DebugCollector.IsEnabled() {
		c.DebugCollector.RecordTransition(c.id, c.lap.Index, prev.String(), next.phase().String(), sample.Elapsed)
	}

	c.current = next
	c.state = state
	c.command = c.commandFor(next, sample, mode, playing)
}

func (c *Controller) variantFor(sample timing.Sample) variant {
	if c.lap.IsRest {
		return restVariant{wall: c.orient.StartWall}
	}
	switch sample.Segment {
	case timing.SegmentTurn:
		return turningVariant{startYaw: c.orient.EntryYaw, fromDirection: -c.orient.Away}
	case timing.SegmentStartGlide:
		return startGlideVariant{pushOff: c.lap.Index == 0}
	case timing.SegmentSwim:
		return swimmingVariant{}
	case timing.SegmentEndGlide:
		return endGlideVariant{}
	}
	wall := c.orient.EndWall(c.cfg.Pool)
	if c.lap.IsLastLap {
		return finishedVariant{wall: wall}
	}
	return waitingVariant{wall: wall}
}

func (c *Controller) snapshot(sample timing.Sample, v variant) State {
	s := State{
		SwimmerID:   c.id,
		LapIndex:    c.lap.Index,
		Phase:       v.phase(),
		LaneOffset:  c.cfg.LaneOffset,
		Direction:   c.orient.Away,
		StrokeType:  c.lap.Stroke(),
		StrokeCount: sample.StrokeCount,
		StrokePhase: sample.StrokePhase,
		Elapsed:     sample.Elapsed,
		LapProgress: c.plan.Progress(sample.Elapsed),
		Pitch:       PronePitch,
		Yaw:         c.orient.swimYaw(c.lap),
	}

	switch v := v.(type) {
	case turningVariant:
		s.Position = c.orient.StartWall
		s.Direction = v.fromDirection
		s.Yaw = v.startYaw + math.Pi*sample.TurnProgress
		if c.lap.Stroke() == lap.Backstroke {
			s.Pitch = SupinePitch
		}
	case startGlideVariant:
		s.Position = c.lanePosition(sample.Distance)
		s.Speed = c.plan.StartGlideSpeed
	case swimmingVariant:
		s.Position = c.lanePosition(sample.Distance)
		s.Speed = c.plan.SwimSpeed
	case endGlideVariant:
		s.Position = c.lanePosition(sample.Distance)
		s.Speed = c.plan.EndGlideSpeed
	case waitingVariant:
		s.Position = v.wall
	case finishedVariant:
		s.Position = v.wall + c.poseOffset
	case restVariant:
		s.Position = v.wall + c.poseOffset
		s.Direction = c.orient.EntryDirection
		s.Yaw = c.orient.EntryYaw
		s.StrokeCount = 0
		s.StrokePhase = 0
	}
	return s
}

// lanePosition converts travelled distance to a lane coordinate, clamped to
// the wall offsets.
func (c *Controller) lanePosition(distance float64) float64 {
	pos := c.orient.StartWall + float64(c.orient.Away)*distance
	near, far := c.cfg.Pool.NearWall(), c.cfg.Pool.FarWall()
	if pos < near {
		return near
	}
	if pos > far {
		return far
	}
	return pos
}

func (c *Controller) commandFor(v variant, sample timing.Sample, mode CommandMode, playing bool) Command {
	switch v := v.(type) {
	case startGlideVariant:
		if v.pushOff {
			return Command{Clip: ClipPushOff, Mode: mode, Time: sample.SegmentElapsed, Rate: 1, Paused: !playing}
		}
		return Command{Clip: ClipGlide, Mode: ModeTime, Paused: true}
	case swimmingVariant:
		return Command{
			Clip:   StrokeClip(c.lap.Stroke()),
			Mode:   mode,
			Time:   sample.StrokePhase * c.cfg.Clips.NominalCycleSeconds,
			Rate:   c.plan.AnimationRate,
			Paused: !playing || c.plan.AnimationRate == 0,
		}
	case endGlideVariant:
		return Command{Clip: ClipGlide, Mode: ModeTime, Paused: true}
	case turningVariant:
		// Scrubbed manually by time even while paused.
		return Command{
			Clip:   ClipTurn,
			Mode:   ModeTime,
			Time:   c.cfg.Clips.TurnTime(sample.TurnProgress),
			Rate:   c.cfg.Clips.TurnRate(c.plan.TurnDuration),
			Paused: true,
		}
	case restVariant:
		return Command{Clip: ClipRest, Mode: ModeTime, Paused: true}
	case finishedVariant:
		return Command{Clip: ClipFinish, Mode: ModeTime, Paused: true}
	}
	return Command{Clip: ClipWait, Mode: ModeTime, Paused: true}
}
