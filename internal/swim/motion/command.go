package motion

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
)

// Clip identifiers understood by the animation player.
const (
	ClipPushOff = "push_off"
	ClipGlide   = "glide"
	ClipTurn    = "turn"
	ClipWait    = "wait"
	ClipRest    = "rest"
	ClipFinish  = "finish"
)

// StrokeClip returns the stroke-cycle clip id for a stroke type.
func StrokeClip(s lap.StrokeType) string {
	return "stroke_" + string(s.Normalize())
}

// ErrUnknownClip is returned by animators that cannot resolve a clip id.
var ErrUnknownClip = errors.New("unknown animation clip")

// CommandMode tells the animation player which of Time or Rate to honour.
type CommandMode uint8

const (
	// ModeRate plays the clip at Rate from wherever it currently is.
	ModeRate CommandMode = iota
	// ModeTime pins the clip to Time (scrubbed playback).
	ModeTime
)

func (m CommandMode) String() string {
	if m == ModeTime {
		return "time"
	}
	return "rate"
}

// Command is a directive for the external animation player. The motion core
// never reads a command back and never checks whether it was honoured.
type Command struct {
	Clip   string
	Mode   CommandMode
	Time   float64 // clip seconds
	Rate   float64 // playback rate; negative plays the clip backwards
	Paused bool
}

// Animator is the animation-playback collaborator. Apply failures are
// warnings only; they never influence motion.
type Animator interface {
	Apply(swimmerID uuid.UUID, cmd Command) error
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(swimmerID uuid.UUID, cmd Command) error

// Apply calls f.
func (f AnimatorFunc) Apply(swimmerID uuid.UUID, cmd Command) error { return f(swimmerID, cmd) }

// ClipSet is an Animator that only checks clip availability. It stands in
// for an asset-backed player in headless runs and tests.
type ClipSet map[string]struct{}

// DefaultClipSet returns every clip the controller can emit.
func DefaultClipSet() ClipSet {
	set := ClipSet{}
	for _, id := range []string{ClipPushOff, ClipGlide, ClipTurn, ClipWait, ClipRest, ClipFinish} {
		set[id] = struct{}{}
	}
	for _, s := range lap.StrokeTypes {
		set[StrokeClip(s)] = struct{}{}
	}
	return set
}

// Apply returns ErrUnknownClip for clips missing from the set.
func (s ClipSet) Apply(swimmerID uuid.UUID, cmd Command) error {
	if _, ok := s[cmd.Clip]; !ok {
		return fmt.Errorf("swimmer %s: clip %q: %w", swimmerID, cmd.Clip, ErrUnknownClip)
	}
	return nil
}

// Clips holds the clip timings the controller needs to build commands.
type Clips struct {
	NominalCycleSeconds float64
	TurnClipSeconds     float64
	TurnGlideFrame      float64 // normalised clip position the turn starts on
	TurnSquatFrame      float64 // normalised clip position the turn ends on
}

// ClipsFromTuning builds Clips from a tuning config.
func ClipsFromTuning(cfg *config.SwimTuning) Clips {
	return Clips{
		NominalCycleSeconds: cfg.GetNominalCycleSeconds(),
		TurnClipSeconds:     cfg.GetTurnClipSeconds(),
		TurnGlideFrame:      cfg.GetTurnGlideFrame(),
		TurnSquatFrame:      cfg.GetTurnSquatFrame(),
	}
}

// TurnRate is the (negative) playback rate that sweeps the turn clip from the
// glide frame back to the squat frame in turnDuration seconds.
func (c Clips) TurnRate(turnDuration float64) float64 {
	if turnDuration <= 0 {
		return 0
	}
	span := c.TurnGlideFrame - c.TurnSquatFrame
	return -span * c.TurnClipSeconds / turnDuration
}

// TurnTime is the clip time shown at the given turn progress in [0,1].
func (c Clips) TurnTime(progress float64) float64 {
	span := c.TurnGlideFrame - c.TurnSquatFrame
	return (c.TurnGlideFrame - progress*span) * c.TurnClipSeconds
}
