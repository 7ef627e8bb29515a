package session

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/debug"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/splash"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/timing"
)

// Entry describes one swimmer to add to a session.
type Entry struct {
	ID   uuid.UUID // generated when Nil
	Name string
	Laps []lap.Descriptor
}

// Controls are the playback controls applied to one tick.
type Controls struct {
	IsPlaying       bool
	SpeedMultiplier float64 // zero means 1
	// TimelineProgress, when set, scrubs every swimmer to this fraction of
	// the session instead of advancing.
	TimelineProgress *float64
}

// SwimmerFrame is one swimmer's output for a frame.
type SwimmerFrame struct {
	SwimmerID uuid.UUID
	Name      string
	Lane      int
	State     motion.State
	Command   motion.Command
	Particles []splash.Particle
	Spawns    []splash.SpawnEvent
}

// Frame is the result of one Tick. It shares no memory with the session.
type Frame struct {
	ID       uint64
	Swimmers []SwimmerFrame
	Warnings []string
	Debug    *debug.DebugFrame
}

// Option configures a Session.
type Option func(*Session)

// WithAnimator sets the animation-playback collaborator that receives every
// swimmer's command each frame.
func WithAnimator(a motion.Animator) Option {
	return func(s *Session) { s.animator = a }
}

// WithDebugCollector attaches a debug collector to every swimmer.
func WithDebugCollector(c *debug.DebugCollector) Option {
	return func(s *Session) { s.debug = c }
}

// WithProfiles overrides the splash profile table.
func WithProfiles(t splash.Table) Option {
	return func(s *Session) { s.profiles = t }
}

// Session drives a set of swimmers on a shared clock.
type Session struct {
	swimmers []*Swimmer
	pool     timing.Pool
	duration float64

	animator motion.Animator
	debug    *debug.DebugCollector
	profiles splash.Table
	frameID  uint64
}

// New builds a session from a tuning config and swimmer entries. Swimmer i
// swims in lane i, offset by lane_spacing_m, and its splash arena is seeded
// with random_seed+i. Every lap of every swimmer is validated up front; the
// first invalid lap fails the whole session.
func New(cfg *config.SwimTuning, entries []Entry, opts ...Option) (*Session, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("session has no swimmers")
	}
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.profiles == nil {
		s.profiles = splash.DefaultTable()
	}

	s.pool = timing.PoolFromTuning(cfg)
	for i, e := range entries {
		tl, err := NewTimeline(e.Laps, s.pool)
		if err != nil {
			return nil, fmt.Errorf("swimmer %d (%s): %w", i, e.Name, err)
		}
		warnUnknownStrokes(e.Name, e.Laps)

		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		ctrl := motion.NewController(id, motion.ConfigFromTuning(cfg, float64(i)*cfg.GetLaneSpacingM()))

		arenaCfg := splash.ConfigFromTuning(cfg)
		arenaCfg.Seed += int64(i)
		arena, err := splash.NewArena(id, arenaCfg, s.profiles)
		if err != nil {
			return nil, fmt.Errorf("swimmer %d (%s): %w", i, e.Name, err)
		}
		if s.debug != nil {
			ctrl.DebugCollector = s.debug
			arena.DebugCollector = s.debug
		}

		if err := ctrl.EnterLap(tl.Lap(0)); err != nil {
			return nil, fmt.Errorf("swimmer %d (%s): %w", i, e.Name, err)
		}
		s.swimmers = append(s.swimmers, &Swimmer{
			id:       id,
			name:     e.Name,
			lane:     i,
			timeline: tl,
			ctrl:     ctrl,
			arena:    arena,
		})
		s.duration = math.Max(s.duration, tl.Duration())
	}
	return s, nil
}

func warnUnknownStrokes(name string, laps []lap.Descriptor) {
	for _, l := range laps {
		if l.StrokeType != "" && !l.StrokeType.IsValid() {
			monitoring.Warnf("swimmer %s lap %d: unknown stroke type %q, using %s", name, l.Index, l.StrokeType, lap.Freestyle)
		}
	}
}

// Swimmers returns the session's swimmers in lane order.
func (s *Session) Swimmers() []*Swimmer { return s.swimmers }

// Duration returns the length of the longest timeline in seconds.
func (s *Session) Duration() float64 { return s.duration }

// Progress returns how far the session has been played, in [0,1].
func (s *Session) Progress() float64 {
	if s.duration <= 0 {
		return 0
	}
	var t float64
	for _, sw := range s.swimmers {
		t = math.Max(t, sw.SessionTime())
	}
	return math.Min(1, t/s.duration)
}

// Finished reports whether every swimmer has completed its final lap.
func (s *Session) Finished() bool {
	for _, sw := range s.swimmers {
		if !sw.Finished() {
			return false
		}
	}
	return true
}

// Tick runs one frame. Per swimmer the order is fixed: phase transition and
// position update (the controller), then particle integration, then spawn
// evaluation against the already-updated state. Particles are frozen while
// paused. A scrub replaces the advance for this frame.
func (s *Session) Tick(dt float64, c Controls) Frame {
	s.frameID++
	s.debug.BeginFrame(s.frameID)
	frame := Frame{ID: s.frameID, Swimmers: make([]SwimmerFrame, 0, len(s.swimmers))}

	speed := c.SpeedMultiplier
	if speed == 0 {
		speed = 1
	} else if !(speed > 0) || math.IsInf(speed, 0) {
		frame.warn("invalid speed multiplier %v, using 1", speed)
		speed = 1
	}

	if c.TimelineProgress != nil {
		s.seek(*c.TimelineProgress, &frame)
	}

	for _, sw := range s.swimmers {
		var spawns []splash.SpawnEvent
		if c.TimelineProgress == nil {
			if err := sw.advance(dt, speed, c.IsPlaying); err != nil {
				frame.warn("swimmer %s: %v", sw.name, err)
			}
			if c.IsPlaying {
				sw.arena.Integrate(dt * speed)
				spawns = append(spawns, sw.arena.Spawn(sw.ctrl.State())...)
			}
		}

		cmd := sw.ctrl.Command()
		if s.animator != nil {
			if err := s.animator.Apply(sw.id, cmd); err != nil {
				frame.warn("swimmer %s: animator: %v", sw.name, err)
			}
		}
		frame.Swimmers = append(frame.Swimmers, SwimmerFrame{
			SwimmerID: sw.id,
			Name:      sw.name,
			Lane:      sw.lane,
			State:     sw.ctrl.State(),
			Command:   cmd,
			Particles: sw.arena.AppendLive(nil),
			Spawns:    spawns,
		})
	}

	frame.Debug = s.debug.Emit()
	return frame
}

// Seek scrubs every swimmer to progress (0..1) of the session and returns
// how many swimmers rejected the scrub.
func (s *Session) Seek(progress float64) int {
	return s.seek(progress, &Frame{})
}

func (s *Session) seek(progress float64, frame *Frame) int {
	if math.IsNaN(progress) {
		progress = 0
	}
	t := math.Min(1, math.Max(0, progress)) * s.duration

	rejected := 0
	for _, sw := range s.swimmers {
		ok, err := sw.seek(t)
		if err != nil {
			frame.warn("swimmer %s: seek: %v", sw.name, err)
		}
		if !ok {
			rejected++
		}
	}
	return rejected
}

func (f *Frame) warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	f.Warnings = append(f.Warnings, msg)
	monitoring.Warnf("%s", msg)
}
