package motion

// Phase is the discrete motion state of a swimmer within a lap.
type Phase uint8

const (
	PhaseStartGlide Phase = iota
	PhaseSwimming
	PhaseEndGlide
	PhaseTurning
	PhaseWaiting
	PhaseRest
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseStartGlide:
		return "start_glide"
	case PhaseSwimming:
		return "swimming"
	case PhaseEndGlide:
		return "end_glide"
	case PhaseTurning:
		return "turning"
	case PhaseWaiting:
		return "waiting"
	case PhaseRest:
		return "rest"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Scrubbable reports whether Seek may be applied while in this phase.
// TURNING and WAITING are event driven, not time continuous.
func (p Phase) Scrubbable() bool {
	return p != PhaseTurning && p != PhaseWaiting
}

// variant is the controller's current phase together with the payload only
// that phase carries. Exactly one variant is held at a time, so flag
// combinations such as "turning and waiting" cannot be expressed.
type variant interface {
	phase() Phase
}

type startGlideVariant struct {
	pushOff bool // first lap: the glide is the push-off from the start wall
}

type swimmingVariant struct{}

type endGlideVariant struct{}

type turningVariant struct {
	startYaw      float64
	fromDirection int
}

type waitingVariant struct {
	wall float64
}

type restVariant struct {
	wall float64
}

type finishedVariant struct {
	wall float64
}

func (startGlideVariant) phase() Phase { return PhaseStartGlide }
func (swimmingVariant) phase() Phase   { return PhaseSwimming }
func (endGlideVariant) phase() Phase   { return PhaseEndGlide }
func (turningVariant) phase() Phase    { return PhaseTurning }
func (waitingVariant) phase() Phase    { return PhaseWaiting }
func (restVariant) phase() Phase       { return PhaseRest }
func (finishedVariant) phase() Phase   { return PhaseFinished }
