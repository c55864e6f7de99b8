package search

import "time"

// Limits are reported cooperatively: the driver never
// polls wall time or any other resource itself. Each of these is a
// Monitor that inspects Measures from an after_* hook and calls
// ReachLimit when its threshold is crossed.

// NodeLimit stops the search once a node count is reached.
type NodeLimit struct {
	BaseMonitor
	Max int64
}

// AfterOpenNode checks the node counter after every OPEN_NODE visit,
// the point at which recordNode has just run.
func (l *NodeLimit) AfterOpenNode(d *Driver) {
	if l.Max > 0 && d.Measures().NodeCount() >= l.Max {
		d.ReachLimit()
	}
}

// TimeLimit stops the search once a wall-clock budget elapses.
type TimeLimit struct {
	BaseMonitor
	Max   time.Duration
	start time.Time
}

// NewTimeLimit returns a TimeLimit whose clock starts now. Plug it
// immediately before Launch so the budget covers the whole run.
func NewTimeLimit(max time.Duration) *TimeLimit {
	return &TimeLimit{Max: max, start: time.Now()}
}

// AfterOpenNode is as good a cooperative checkpoint as any other
// transition boundary; checking once per node keeps overhead
// low without starving the check for long branches.
func (l *TimeLimit) AfterOpenNode(d *Driver) {
	if l.Max > 0 && time.Since(l.start) >= l.Max {
		d.ReachLimit()
	}
}

// SolutionLimit stops the search once a target number of solutions has
// been recorded.
type SolutionLimit struct {
	BaseMonitor
	Max int64
}

// AfterOpenNode checks the solution counter, which the driver will have
// already incremented, just before firing OnSolution, earlier in the
// same transition (tie-break
// rule: "the solution is recorded first, then the limit interrupt
// fires").
func (l *SolutionLimit) AfterOpenNode(d *Driver) {
	if l.Max > 0 && d.Measures().SolutionCount() >= l.Max {
		d.ReachLimit()
	}
}
