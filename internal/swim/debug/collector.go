// Package debug provides instrumentation for the swim motion core.
// The DebugCollector captures per-frame internals (phase transitions, rejected
// scrubs, splash spawn decisions) for overlays and tuning.
package debug

import "github.com/google/uuid"

// Pre-allocation capacities for debug frame slices.
//   - a handful of swimmers, at most one or two transitions each per frame
//   - spawn decisions are only recorded for emitters inside their window
const (
	defaultTransitionCapacity = 8
	defaultSpawnCapacity      = 32
)

// SpawnOutcome classifies a spawn evaluation for an emitter.
type SpawnOutcome string

const (
	SpawnAccepted    SpawnOutcome = "accepted"
	SpawnCoolingDown SpawnOutcome = "cooldown"
	SpawnProbability SpawnOutcome = "probability"
	SpawnArenaFull   SpawnOutcome = "arena_full"
)

// DebugCollector accumulates debug artifacts during a single frame.
//
// The collector is stateful: call Record*() methods during processing, then
// Emit() at frame completion to extract the artifacts. BeginFrame() starts
// the next frame.
type DebugCollector struct {
	enabled bool
	current *DebugFrame
}

// DebugFrame contains all debug artifacts for a single frame.
type DebugFrame struct {
	FrameID uint64

	Transitions    []PhaseTransition
	RejectedSeeks  []RejectedSeek
	SpawnDecisions []SpawnDecision
}

// PhaseTransition records a swimmer moving between motion phases.
type PhaseTransition struct {
	SwimmerID uuid.UUID
	LapIndex  int
	From      string
	To        string
	Elapsed   float64 // lap-local seconds at the transition
}

// RejectedSeek records a scrub that was refused because the swimmer was (or
// would have been) in an event-driven phase.
type RejectedSeek struct {
	SwimmerID uuid.UUID
	LapIndex  int
	Phase     string
	Progress  float64
}

// SpawnDecision records one emitter's spawn evaluation.
type SpawnDecision struct {
	SwimmerID   uuid.UUID
	Emitter     string
	Slot        int
	StrokePhase float64
	Outcome     SpawnOutcome
}

// NewDebugCollector creates a collector that's initially disabled.
func NewDebugCollector() *DebugCollector {
	return &DebugCollector{}
}

// SetEnabled controls whether the collector records artifacts.
// When disabled, all Record*() calls are no-ops.
func (c *DebugCollector) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// IsEnabled returns true if the collector is actively recording.
func (c *DebugCollector) IsEnabled() bool {
	return c != nil && c.enabled
}

// BeginFrame initialises collection for a new frame.
func (c *DebugCollector) BeginFrame(frameID uint64) {
	if !c.IsEnabled() {
		return
	}
	c.current = &DebugFrame{
		FrameID:        frameID,
		Transitions:    make([]PhaseTransition, 0, defaultTransitionCapacity),
		SpawnDecisions: make([]SpawnDecision, 0, defaultSpawnCapacity),
	}
}

// RecordTransition captures a phase change.
func (c *DebugCollector) RecordTransition(swimmerID uuid.UUID, lapIndex int, from, to string, elapsed float64) {
	if !c.IsEnabled() || c.current == nil {
		return
	}
	c.current.Transitions = append(c.current.Transitions, PhaseTransition{
		SwimmerID: swimmerID,
		LapIndex:  lapIndex,
		From:      from,
		To:        to,
		Elapsed:   elapsed,
	})
}

// RecordRejectedSeek captures a refused scrub.
func (c *DebugCollector) RecordRejectedSeek(swimmerID uuid.UUID, lapIndex int, phase string, progress float64) {
	if !c.IsEnabled() || c.current == nil {
		return
	}
	c.current.RejectedSeeks = append(c.current.RejectedSeeks, RejectedSeek{
		SwimmerID: swimmerID,
		LapIndex:  lapIndex,
		Phase:     phase,
		Progress:  progress,
	})
}

// RecordSpawn captures an emitter's spawn evaluation.
func (c *DebugCollector) RecordSpawn(swimmerID uuid.UUID, emitter string, slot int, strokePhase float64, outcome SpawnOutcome) {
	if !c.IsEnabled() || c.current == nil {
		return
	}
	c.current.SpawnDecisions = append(c.current.SpawnDecisions, SpawnDecision{
		SwimmerID:   swimmerID,
		Emitter:     emitter,
		Slot:        slot,
		StrokePhase: strokePhase,
		Outcome:     outcome,
	})
}

// Emit returns the accumulated debug frame and prepares for the next frame.
// Returns nil if collection is disabled or no frame was begun.
func (c *DebugCollector) Emit() *DebugFrame {
	if !c.IsEnabled() || c.current == nil {
		return nil
	}
	frame := c.current
	c.current = nil
	return frame
}

// Reset clears any pending artifacts without emitting them.
func (c *DebugCollector) Reset() {
	c.current = nil
}
