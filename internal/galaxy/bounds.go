package galaxy

import "math/rand"

// Coordinates is a point in the flat map space used for interception geometry.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Bounds is an axis-aligned bounding box for one system's terminals.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// systemBounds holds the design-constant coordinate envelope per system.
var systemBounds = map[string]Bounds{
	Stanton: {-50_000, 50_000, -50_000, 50_000, -10_000, 10_000},
	Pyro:    {70_000, 120_000, -60_000, -20_000, 15_000, 35_000},
	Nyx:     {-200_000, -150_000, -110_000, -80_000, 30_000, 50_000},
	Terra:   {-140_000, -100_000, 50_000, 80_000, -20_000, -5_000},
	Magnus:  {80_000, 120_000, 40_000, 70_000, -15_000, 5_000},
}

// Distance heuristic intervals. Exact travel distances are unknowable from
// the feed; downstream scoring normalization depends on these intervals
// staying fixed.
const (
	sameSystemMinDistance  = 15_000
	sameSystemMaxDistance  = 35_000
	crossSystemMinDistance = 40_000
	crossSystemMaxDistance = 80_000
)

// Sampler draws heuristic distances and coordinates. It carries its own RNG
// so tests can pin a seed; production seeds from the clock.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler with the given seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// BoundsFor returns the coordinate envelope for a system. Unknown systems
// get Stanton's envelope, matching the resolver default.
func BoundsFor(system string) Bounds {
	if b, ok := systemBounds[system]; ok {
		return b
	}
	return systemBounds[Stanton]
}

// RandomCoordinates samples a uniform point inside the system's envelope.
func (s *Sampler) RandomCoordinates(system string) Coordinates {
	b := BoundsFor(system)
	return Coordinates{
		X: b.MinX + s.rng.Float64()*(b.MaxX-b.MinX),
		Y: b.MinY + s.rng.Float64()*(b.MaxY-b.MinY),
		Z: b.MinZ + s.rng.Float64()*(b.MaxZ-b.MinZ),
	}
}

// RouteDistance samples the heuristic route distance for the system pair.
func (s *Sampler) RouteDistance(originSystem, destSystem string) float64 {
	if originSystem == destSystem {
		return sameSystemMinDistance + s.rng.Float64()*(sameSystemMaxDistance-sameSystemMinDistance)
	}
	return crossSystemMinDistance + s.rng.Float64()*(crossSystemMaxDistance-crossSystemMinDistance)
}

// Jitter returns a uniform offset in [-spread, spread].
func (s *Sampler) Jitter(spread float64) float64 {
	return (s.rng.Float64()*2 - 1) * spread
}

// Lerp interpolates between two coordinates at parameter t.
func Lerp(a, b Coordinates, t float64) Coordinates {
	return Coordinates{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
