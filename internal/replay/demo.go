package replay

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
)

const (
	// DefaultLaneCount is the number of swimmers in a demo session.
	DefaultLaneCount = 5

	demoSecondsPer100m = 120.0
	demoLengthsPerRest = 4
	demoMinStrokes     = 12
	demoStrokeSpread   = 6
	demoMinRestSeconds = 10.0
	demoRestSpread     = 5.0
)

// DemoLaps generates roughly minutes of freestyle at 2:00/100 m in a pool of
// poolLengthM metres. Each length varies by up to 10 % either way and takes
// 12 to 17 strokes; a 10 to 15 s rest follows every fourth length except the
// last one. At least one length is always produced.
func DemoLaps(rng *rand.Rand, minutes, poolLengthM float64) []lap.Descriptor {
	secondsPerLength := demoSecondsPer100m / 100 * poolLengthM
	count := int(minutes * 60 / secondsPerLength)
	if count < 1 {
		count = 1
	}

	laps := make([]lap.Descriptor, 0, count+count/demoLengthsPerRest)
	for length := 0; length < count; length++ {
		laps = append(laps, lap.Descriptor{
			Index:           len(laps),
			DurationSeconds: secondsPerLength * (0.9 + 0.2*rng.Float64()),
			Strokes:         demoMinStrokes + rng.Intn(demoStrokeSpread),
			StrokeType:      lap.Freestyle,
		})
		if (length+1)%demoLengthsPerRest == 0 && length+1 < count {
			laps = append(laps, lap.Descriptor{
				Index:           len(laps),
				DurationSeconds: demoMinRestSeconds + demoRestSpread*rng.Float64(),
				IsRest:          true,
			})
		}
	}
	return laps
}

// DemoEntries builds swimmers demo swimmers, each with its own generator
// derived from seed so adding a lane does not change the others.
func DemoEntries(seed int64, minutes, poolLengthM float64, swimmers int) []session.Entry {
	if swimmers <= 0 {
		swimmers = DefaultLaneCount
	}
	entries := make([]session.Entry, 0, swimmers)
	for i := 0; i < swimmers; i++ {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			id = uuid.New()
		}
		entries = append(entries, session.Entry{
			ID:   id,
			Name: fmt.Sprintf("Swimmer %d", i+1),
			Laps: DemoLaps(rng, minutes, poolLengthM),
		})
	}
	return entries
}
