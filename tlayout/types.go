// Package tlayout computes 2-D node positions for one snapshot at a time: a
// node-sizing pass, a position-seeding pass that inherits coordinates from
// the previous snapshot, three ForceAtlas2 passes, and a three-sweep overlap
// removal pass. A pass failure never aborts the run (spec.md §7): it is
// returned as a *PassError and the caller keeps whatever state the previous
// pass left.
package tlayout

import "fmt"

// Config holds every tunable of the layout stage. IterationsFactor scales
// every pass's iteration count uniformly (spec.md §4.3's "F").
type Config struct {
	IterationsFactor float64

	Scaling       float64
	Gravity       float64
	LinLog        bool
	StrongGravity bool
	BarnesHut     bool

	OverlapEnabled bool

	SizeMin    float64
	SizeFactor float64
	SizePower  float64

	// Seed drives the deterministic fallback PRNG used for positions that
	// have no previous-snapshot or neighbor-derived seed.
	Seed int64
}

// DefaultConfig matches the settings table in spec.md §4.3.
func DefaultConfig() Config {
	return Config{
		IterationsFactor: 1,
		Scaling:          1,
		Gravity:          0.01,
		LinLog:           true,
		StrongGravity:    true,
		BarnesHut:        true,
		OverlapEnabled:   true,
		SizeMin:          10,
		SizeFactor:       2,
		SizePower:        1,
		Seed:             1,
	}
}

// PositionIndex maps node id to (x, y). Its lifetime is one snapshot
// boundary: it is built from snapshot Sₖ's final positions and consumed
// while seeding Sₖ₊₁.
type PositionIndex struct {
	pos map[string][2]float64
}

func NewPositionIndex() *PositionIndex {
	return &PositionIndex{pos: make(map[string][2]float64)}
}

func (p *PositionIndex) Get(id string) (x, y float64, ok bool) {
	if p == nil {
		return 0, 0, false
	}
	v, ok := p.pos[id]
	return v[0], v[1], ok
}

func (p *PositionIndex) Set(id string, x, y float64) {
	p.pos[id] = [2]float64{x, y}
}

func (p *PositionIndex) Len() int { return len(p.pos) }

// PassError reports that one named pass failed; the orchestrator logs it and
// continues with whatever the previous pass left (spec.md §7:
// SnapshotComputation is recovered locally).
type PassError struct {
	Pass string
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("tlayout: pass %q failed: %v", e.Pass, e.Err)
}

func (e *PassError) Unwrap() error { return e.Err }
