package search

import "context"

// Config holds driver-wide defaults, following a SolverConfig/
// DefaultSolverConfig style rather than a long constructor argument list.
type Config struct {
	// StateAfterSolution is the state OPEN_NODE transitions to after
	// recording a solution it doesn't stop on. Must be AfterUpBranch or
	// AfterRestart.
	StateAfterSolution State
	// StateAfterFail is the state DOWN_LEFT/DOWN_RIGHT transition to on
	// contradiction. Must be AfterUpBranch or AfterRestart.
	StateAfterFail State
}

// DefaultConfig returns the defaults: backtrack normally after both a
// recorded solution and a failed branch.
func DefaultConfig() Config {
	return Config{
		StateAfterSolution: AfterUpBranch,
		StateAfterFail:     AfterUpBranch,
	}
}

// Option configures a Driver at construction time, following the
// a functional-options pattern for call-scoped overrides.
type Option func(*Driver)

// WithConfig overrides the driver-wide defaults.
func WithConfig(cfg Config) Option {
	return func(d *Driver) { d.cfg = cfg }
}

// WithObjective installs a non-default objective manager (minimize or
// maximize instead of plain satisfaction).
func WithObjective(m *ObjectiveManager) Option {
	return func(d *Driver) { d.objective = m }
}

// WithMonitor plugs a monitor at construction time, equivalent to a
// PlugMonitor call made before Launch.
func WithMonitor(m Monitor) Option {
	return func(d *Driver) { d.monitors.plug(m) }
}

// WithContext sets the context passed to PropagationEngine.Propagate on
// every call, so cancellation/timeouts reach the propagation engine the
// way a context-aware Search(ctx, ...) call expects it.
func WithContext(ctx context.Context) Option {
	return func(d *Driver) { d.ctx = ctx }
}
