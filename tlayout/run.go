package tlayout

import "github.com/richinsley/gexfviz/graphmodel"

// Run computes positions for g (one snapshot's graph, already built by
// slicer.Snapshot.BuildGraph) in place: sizing, position seeding from prev,
// three ForceAtlas2 passes, and (if enabled) three overlap-removal sweeps. It
// returns the PositionIndex to seed the next snapshot.
//
// A failure inside an individual pass does not abort the run: it is
// collected and returned as a PassError (possibly wrapping several, via
// errors.Join semantics is overkill here — only the first is surfaced since
// the orchestrator only needs to know to log and move on) while every other
// pass still executes against whatever state is already on the nodes.
func Run(prev *PositionIndex, g *graphmodel.Graph, cfg Config) (*PositionIndex, error) {
	var firstErr error
	record := func(pass string, err error) {
		if err != nil && firstErr == nil {
			firstErr = &PassError{Pass: pass, Err: err}
		}
	}

	runSafely(func() { applySizing(g, cfg) }, "sizing", record)
	runSafely(func() { seedPositions(g, prev, cfg) }, "seed", record)

	for _, pass := range fa2Passes(cfg) {
		p := pass
		runSafely(func() { runForceAtlas2(g, cfg, p) }, "fa2:"+p.name, record)
	}

	if cfg.OverlapEnabled {
		for i, sweep := range overlapSweeps(cfg) {
			s := sweep
			n := i
			runSafely(func() { runOverlapSweep(g, s) }, overlapPassName(n), record)
		}
	}

	next := NewPositionIndex()
	for _, n := range g.Nodes() {
		next.Set(n.ID, n.X, n.Y)
	}
	return next, firstErr
}

func overlapPassName(i int) string {
	switch i {
	case 0:
		return "overlap:1"
	case 1:
		return "overlap:2"
	default:
		return "overlap:3"
	}
}

// runSafely recovers a panic from within a pass (e.g. a numerical failure
// manifesting as an index or NaN-driven invariant violation) and reports it
// through record instead of crashing the whole pipeline, matching spec.md
// §7's "recovered locally" contract for SnapshotComputation errors.
func runSafely(fn func(), pass string, record func(string, error)) {
	defer func() {
		if r := recover(); r != nil {
			record(pass, panicToError(r))
		}
	}()
	fn()
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &stringError{s: toString(r)}
}

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "panic in layout pass"
}
