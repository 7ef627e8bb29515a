package motion

import (
	"math"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/timing"
)

// Pitch poses.
const (
	PronePitch  = 0.0
	SupinePitch = math.Pi
)

// State is a read-only snapshot of one swimmer's motion. Collaborators
// receive copies; mutating one has no effect on the controller.
type State struct {
	SwimmerID uuid.UUID
	LapIndex  int
	Phase     Phase

	Position   float64 // along the lane axis, metres
	LaneOffset float64 // across the lane axis, metres
	Direction  int     // +1 towards the far wall, -1 towards the start wall
	Speed      float64 // current phase speed, m/s

	StrokeType  lap.StrokeType
	StrokePhase float64 // cyclic 0..1
	StrokeCount int

	Elapsed     float64 // lap-local seconds
	LapProgress float64 // Elapsed / lap duration

	Pitch float64
	Yaw   float64
}

// Orientation fixes where a lap starts and which way it is swum.
type Orientation struct {
	StartWall      float64 // lane coordinate of the wall the lap starts at
	Away           int     // direction swum once any turn is complete
	EntryDirection int     // direction held when the lap is entered
	EntryYaw       float64 // yaw held when the lap is entered
}

// InitialOrientation is the pose before the first lap: at the start wall,
// facing down the lane.
func InitialOrientation(pool timing.Pool) Orientation {
	return Orientation{
		StartWall:      pool.NearWall(),
		Away:           1,
		EntryDirection: 1,
		EntryYaw:       0,
	}
}

// EndWall is the wall a swim lap with this orientation finishes at.
func (o Orientation) EndWall(pool timing.Pool) float64 {
	if o.Away > 0 {
		return pool.FarWall()
	}
	return pool.NearWall()
}

// swimYaw is the yaw held after the lap's turn (if any) completes.
func (o Orientation) swimYaw(l lap.Descriptor) float64 {
	if l.Index > 0 {
		return o.EntryYaw + math.Pi
	}
	return o.EntryYaw
}

// NextOrientation derives the orientation of the lap following prevLap. Rest
// laps stay at their wall; swim laps hand over their end wall and reverse.
func NextOrientation(prev Orientation, prevLap lap.Descriptor, pool timing.Pool) Orientation {
	if prevLap.IsRest {
		return prev
	}
	return Orientation{
		StartWall:      prev.EndWall(pool),
		Away:           -prev.Away,
		EntryDirection: prev.Away,
		EntryYaw:       prev.swimYaw(prevLap),
	}
}
