// Package itinerary holds the ordering rules for trip stops.
//
// A trip's stops, sorted by position, always form the dense sequence 1..N. The functions here
// are pure: they compute positions and rewrite plans that the postgres store applies inside a
// single transaction per trip.
package itinerary

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/corkphoto/itinerary-backend/types"
)

// MinRandomStops is the smallest trip the random generator will build.
const MinRandomStops = 2

// PositionChange is one stop whose stored position differs from its normalized position.
type PositionChange struct {
	StopID string
	From   int
	To     int
}

// SortStops orders stops by position, breaking ties on id so corrupt input sorts deterministically.
func SortStops(stops []types.Stop) {
	slices.SortStableFunc(stops, func(a, b types.Stop) int {
		if a.Position != b.Position {
			return a.Position - b.Position
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// NormalizationPlan returns the writes needed to renumber stops to 1..N in (position, id) order.
// An already normalized trip yields an empty plan.
func NormalizationPlan(stops []types.Stop) []PositionChange {
	ordered := slices.Clone(stops)
	SortStops(ordered)

	var changes []PositionChange
	for i, s := range ordered {
		want := i + 1
		if s.Position != want {
			changes = append(changes, PositionChange{StopID: s.ID, From: s.Position, To: want})
		}
	}
	return changes
}

// Normalize returns a sorted copy of stops renumbered 1..N.
func Normalize(stops []types.Stop) []types.Stop {
	ordered := slices.Clone(stops)
	SortStops(ordered)
	for i := range ordered {
		ordered[i].Position = i + 1
	}
	return ordered
}

// IsNormalized reports whether the positions are exactly 1..N, each once.
func IsNormalized(stops []types.Stop) bool {
	seen := make([]bool, len(stops)+1)
	for _, s := range stops {
		if s.Position < 1 || s.Position > len(stops) || seen[s.Position] {
			return false
		}
		seen[s.Position] = true
	}
	return true
}

// NextPosition is one past the highest position, or 1 for an empty trip.
func NextPosition(stops []types.Stop) int {
	highest := 0
	for _, s := range stops {
		highest = max(highest, s.Position)
	}
	return highest + 1
}

// NeighborPosition returns the position a stop at pos swaps with in a trip of n stops.
// ok is false when the stop is already at the boundary in that direction.
func NeighborPosition(pos, n int, dir types.Direction) (neighbor int, ok bool, err error) {
	offset := dir.Offset()
	if offset == 0 {
		return 0, false, fmt.Errorf("direction must be %q or %q, got %q", types.DirectionUp, types.DirectionDown, dir)
	}
	if pos < 1 || pos > n {
		return 0, false, fmt.Errorf("position %d outside 1..%d", pos, n)
	}
	neighbor = pos + offset
	if neighbor < 1 || neighbor > n {
		return 0, false, nil
	}
	return neighbor, true, nil
}

// Move applies an adjacent swap to a normalized copy of stops. The bool reports whether
// anything moved; an unknown stop id is an error.
func Move(stops []types.Stop, stopID string, dir types.Direction) ([]types.Stop, bool, error) {
	ordered := Normalize(stops)
	idx := slices.IndexFunc(ordered, func(s types.Stop) bool { return s.ID == stopID })
	if idx < 0 {
		return nil, false, fmt.Errorf("stop %s not in trip", stopID)
	}

	neighbor, ok, err := NeighborPosition(ordered[idx].Position, len(ordered), dir)
	if err != nil || !ok {
		return ordered, false, err
	}

	other := neighbor - 1
	ordered[idx].Position, ordered[other].Position = ordered[other].Position, ordered[idx].Position
	SortStops(ordered)
	return ordered, true, nil
}

// Remove drops a stop and renumbers the rest, keeping their relative order.
func Remove(stops []types.Stop, stopID string) ([]types.Stop, error) {
	kept := slices.DeleteFunc(slices.Clone(stops), func(s types.Stop) bool { return s.ID == stopID })
	if len(kept) == len(stops) {
		return nil, fmt.Errorf("stop %s not in trip", stopID)
	}
	return Normalize(kept), nil
}

// ClampStopCount bounds a requested random trip size to [minStops, maxStops] and then to the pool size.
func ClampStopCount(requested, minStops, maxStops, poolSize int) int {
	n := min(max(requested, minStops), maxStops)
	return min(n, poolSize)
}

// Sampler draws locations without replacement. It is safe for concurrent use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler over src, or over a randomly seeded PCG when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample returns n distinct locations from pool in uniformly random order.
// The pool is not modified. n is capped at len(pool).
func (s *Sampler) Sample(pool []types.Location, n int) []types.Location {
	n = min(max(n, 0), len(pool))
	picked := slices.Clone(pool)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}

// StopsFor lays out sampled locations as stops at positions 1..len(locations).
func StopsFor(tripID string, locations []types.Location) []types.Stop {
	stops := make([]types.Stop, len(locations))
	for i, loc := range locations {
		l := loc
		stops[i] = types.Stop{
			TripID:     tripID,
			LocationID: loc.ID,
			Position:   i + 1,
			Location:   &l,
		}
	}
	return stops
}
