package splash

import "github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"

// Emitter is one of the four limb emission points.
type Emitter uint8

const (
	LeftHand Emitter = iota
	RightHand
	LeftFoot
	RightFoot

	numEmitters = 4
)

// Emitters lists every emission point in partition order.
var Emitters = [numEmitters]Emitter{LeftHand, RightHand, LeftFoot, RightFoot}

// capacityShare is each emitter's fraction of the arena.
var capacityShare = [numEmitters]float64{0.30, 0.30, 0.20, 0.20}

func (e Emitter) String() string {
	switch e {
	case LeftHand:
		return "left_hand"
	case RightHand:
		return "right_hand"
	case LeftFoot:
		return "left_foot"
	case RightFoot:
		return "right_foot"
	}
	return "unknown"
}

// Window is a stroke-phase interval in [0,1]. When Start > End the window
// wraps across the cycle boundary, so {0.9, 0.1} covers 0.9..1 and 0..0.1.
type Window struct {
	Start float64
	End   float64
}

// Contains reports whether phase lies inside the window, bounds inclusive.
func (w Window) Contains(phase float64) bool {
	if w.Start <= w.End {
		return phase >= w.Start && phase <= w.End
	}
	return phase >= w.Start || phase <= w.End
}

// EmitterProfile configures one emission point for a stroke.
type EmitterProfile struct {
	// Probability is the chance an eligible evaluation spawns a particle.
	Probability float64
	// Lateral is the offset across the lane, positive to the swimmer's left
	// when swimming towards the far wall.
	Lateral float64
	// Longitudinal is the offset along the swim direction, positive ahead of
	// the body origin.
	Longitudinal float64
	Window       Window
	// Intensity scales the vertical impulse.
	Intensity float64
}

// Profile is the splash configuration of one stroke, indexed by Emitter.
type Profile [numEmitters]EmitterProfile

// Table maps stroke types to profiles.
type Table map[lap.StrokeType]Profile

// DefaultTable returns the built-in profile for each supported stroke.
func DefaultTable() Table {
	return Table{
		lap.Freestyle: {
			LeftHand:  {Probability: 0.8, Lateral: 0.25, Longitudinal: 0.7, Window: Window{0.00, 0.15}, Intensity: 1.0},
			RightHand: {Probability: 0.8, Lateral: -0.25, Longitudinal: 0.7, Window: Window{0.50, 0.65}, Intensity: 1.0},
			LeftFoot:  {Probability: 0.5, Lateral: 0.10, Longitudinal: -1.1, Window: Window{0.20, 0.45}, Intensity: 0.5},
			RightFoot: {Probability: 0.5, Lateral: -0.10, Longitudinal: -1.1, Window: Window{0.70, 0.95}, Intensity: 0.5},
		},
		lap.Backstroke: {
			LeftHand:  {Probability: 0.7, Lateral: 0.35, Longitudinal: 0.6, Window: Window{0.90, 0.10}, Intensity: 0.9},
			RightHand: {Probability: 0.7, Lateral: -0.35, Longitudinal: 0.6, Window: Window{0.40, 0.60}, Intensity: 0.9},
			LeftFoot:  {Probability: 0.5, Lateral: 0.10, Longitudinal: -1.1, Window: Window{0.15, 0.40}, Intensity: 0.6},
			RightFoot: {Probability: 0.5, Lateral: -0.10, Longitudinal: -1.1, Window: Window{0.65, 0.90}, Intensity: 0.6},
		},
		lap.Breaststroke: {
			LeftHand:  {Probability: 0.9, Lateral: 0.30, Longitudinal: 0.5, Window: Window{0.55, 0.75}, Intensity: 0.7},
			RightHand: {Probability: 0.9, Lateral: -0.30, Longitudinal: 0.5, Window: Window{0.55, 0.75}, Intensity: 0.7},
			LeftFoot:  {Probability: 0.6, Lateral: 0.20, Longitudinal: -1.0, Window: Window{0.80, 0.95}, Intensity: 0.4},
			RightFoot: {Probability: 0.6, Lateral: -0.20, Longitudinal: -1.0, Window: Window{0.80, 0.95}, Intensity: 0.4},
		},
		lap.Butterfly: {
			LeftHand:  {Probability: 1.0, Lateral: 0.40, Longitudinal: 0.6, Window: Window{0.85, 0.05}, Intensity: 1.4},
			RightHand: {Probability: 1.0, Lateral: -0.40, Longitudinal: 0.6, Window: Window{0.85, 0.05}, Intensity: 1.4},
			LeftFoot:  {Probability: 0.7, Lateral: 0.10, Longitudinal: -1.1, Window: Window{0.30, 0.45}, Intensity: 0.8},
			RightFoot: {Probability: 0.7, Lateral: -0.10, Longitudinal: -1.1, Window: Window{0.30, 0.45}, Intensity: 0.8},
		},
	}
}

// For returns the profile for s. Unknown strokes, and strokes missing from
// the table, use the freestyle profile.
func (t Table) For(s lap.StrokeType) Profile {
	if p, ok := t[s.Normalize()]; ok {
		return p
	}
	return t[lap.Freestyle]
}
