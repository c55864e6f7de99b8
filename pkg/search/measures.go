package search

import (
	"sync/atomic"
	"time"
)

// Outcome is the pair of tri-state results close() fills in, by the
// rules in close.
type Outcome struct {
	// Feasible is true/false once known, or left at its zero value
	// (false) with Undefined set when the table calls for "undefined".
	Feasible  bool
	Undefined bool
	Optimal   bool
}

// Measures holds mutable counters plus the feasibility/optimality
// outcome. Counters use atomics, following a lock-free stats-struct
// style — plugged monitors are expected to treat their own fields the
// same way ("monitors must treat counters as append-only increments
// they own").
type Measures struct {
	solutionCount atomic.Int64
	nodeCount     atomic.Int64
	backtrackCount atomic.Int64
	failCount     atomic.Int64
	restartCount  atomic.Int64
	peakDepth     atomic.Int64

	startedAt time.Time
	wallTime  time.Duration

	outcome Outcome
}

func newMeasures() *Measures {
	return &Measures{startedAt: time.Now()}
}

// SolutionCount returns the number of solutions recorded so far.
func (m *Measures) SolutionCount() int64 { return m.solutionCount.Load() }

// NodeCount returns the number of OPEN_NODE visits.
func (m *Measures) NodeCount() int64 { return m.nodeCount.Load() }

// BacktrackCount returns the number of UP_BRANCH ascents.
func (m *Measures) BacktrackCount() int64 { return m.backtrackCount.Load() }

// FailCount returns the number of propagation/cut contradictions.
func (m *Measures) FailCount() int64 { return m.failCount.Load() }

// RestartCount returns the number of RESTART transitions run.
func (m *Measures) RestartCount() int64 { return m.restartCount.Load() }

// PeakDepth returns the maximum decision-chain depth observed.
func (m *Measures) PeakDepth() int64 { return m.peakDepth.Load() }

// WallTime returns the duration between launch and close. Valid only
// after close() has run.
func (m *Measures) WallTime() time.Duration { return m.wallTime }

// Outcome returns the feasibility/optimality pair close() computed.
func (m *Measures) Outcome() Outcome { return m.outcome }

func (m *Measures) recordNode()      { m.nodeCount.Add(1) }
func (m *Measures) recordSolution()  { m.solutionCount.Add(1) }
func (m *Measures) recordBacktrack() { m.backtrackCount.Add(1) }
func (m *Measures) recordFail()      { m.failCount.Add(1) }
func (m *Measures) recordRestart()   { m.restartCount.Add(1) }

func (m *Measures) recordDepth(depth int) {
	d := int64(depth)
	for {
		old := m.peakDepth.Load()
		if d <= old {
			return
		}
		if m.peakDepth.CompareAndSwap(old, d) {
			return
		}
	}
}

func (m *Measures) reset() {
	m.solutionCount.Store(0)
	m.nodeCount.Store(0)
	m.backtrackCount.Store(0)
	m.failCount.Store(0)
	m.restartCount.Store(0)
	m.peakDepth.Store(0)
	m.startedAt = time.Now()
	m.wallTime = 0
	m.outcome = Outcome{}
}

// close fills Outcome per the outcome table, using isOptimization,
// stoppedAtFirst and hasReachedLimit as observed by the driver at the
// moment the loop exited.
func (m *Measures) close(isOptimization, stoppedAtFirst, hasReachedLimit, exhausted bool) {
	m.wallTime = time.Since(m.startedAt)

	solved := m.SolutionCount() > 0
	switch {
	case solved && isOptimization && (stoppedAtFirst || hasReachedLimit):
		m.outcome = Outcome{Feasible: true, Optimal: false}
	case solved && isOptimization && exhausted:
		m.outcome = Outcome{Feasible: true, Optimal: true}
	case solved && !isOptimization:
		m.outcome = Outcome{Feasible: true}
	case !solved && hasReachedLimit:
		m.outcome = Outcome{Undefined: true, Optimal: false}
	case !solved && exhausted:
		m.outcome = Outcome{Feasible: false}
	default:
		m.outcome = Outcome{Undefined: true}
	}
}
