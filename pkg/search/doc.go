// Package search implements the flat, iterative state machine that drives
// depth-first constraint search: propagation, backtracking over a trail,
// branching through a pluggable decision stack, and external observation
// through monitors, limits, objective cuts, and restarts.
//
// The driver never recurses to express tree descent or ascent — every
// transition is dispatched from a single loop in Driver.Launch, so stack
// usage is independent of search depth and interruption/restart/resumption
// are first-class operations rather than exceptions to the control flow.
//
// search owns the state machine, the decision stack, the objective
// manager, the monitor list, and measures. It treats the propagation
// engine, the branching strategy, and the trail as collaborators it only
// knows through the interfaces in this package (Trail, PropagationEngine,
// BranchingStrategy) — package csp supplies one concrete instance of each.
package search
