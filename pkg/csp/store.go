package csp

import (
	"context"
	"errors"

	"github.com/solverkit/fdsearch/pkg/search"
)

// ErrContradiction is returned by Store methods that drive a domain
// empty; callers (constraints, decisions) are expected
// to turn this into search.CutContradiction rather than propagate a Go
// error up through the driver.
var ErrContradiction = errors.New("csp: domain emptied")

// Var is a handle to one finite-domain variable inside a Store. The
// zero value is not usable; obtain one from Store.NewVar.
type Var struct {
	id int
}

type change struct {
	id  int
	dom Domain
}

// Store owns a set of finite-domain variables, their current domains,
// the constraints registered against them, and a reversible trail of
// domain changes. It implements both search.Trail (world push/pop) and
// search.PropagationEngine (fixpoint filtering), so a Driver can run
// directly against it.
type Store struct {
	domainSize int
	domains    []Domain
	queue      []int
	trail      []change
	worldMarks []int
	constraints []Constraint
	watchers    [][]int // var id -> indices into constraints that mention it
	pinned      []int   // indices into constraints force-reconsidered every Propagate call
}

// NewStore creates an empty store where every variable that will be
// added ranges over 1..domainSize.
func NewStore(domainSize int) *Store {
	return &Store{domainSize: domainSize}
}

// NewVar adds a variable with the full 1..domainSize domain and
// returns its handle.
func (s *Store) NewVar() Var {
	id := len(s.domains)
	s.domains = append(s.domains, Full(s.domainSize))
	s.watchers = append(s.watchers, nil)
	return Var{id: id}
}

// NewVars adds n variables at once.
func (s *Store) NewVars(n int) []Var {
	vars := make([]Var, n)
	for i := range vars {
		vars[i] = s.NewVar()
	}
	return vars
}

// Domain returns the current domain of v.
func (s *Store) Domain(v Var) Domain { return s.domains[v.id] }

// Post registers a constraint and enqueues its variables for an
// initial filtering pass on the next Propagate call.
func (s *Store) Post(c Constraint) {
	idx := len(s.constraints)
	s.constraints = append(s.constraints, c)
	for _, v := range c.Vars() {
		s.watchers[v.id] = append(s.watchers[v.id], idx)
		s.enqueue(v.id)
	}
}

// Pin registers a constraint the same way Post does, but additionally
// re-enqueues its variables at the start of every future Propagate
// call, not only when a watched variable's domain changes. This is for
// constraints whose filtering depends on state outside the store (an
// improving incumbent bound, say) that backtracking itself cannot
// invalidate or re-trigger through the normal watcher mechanism: a
// WorldPop restores a wider domain directly, without enqueueing
// anything, so a constraint that must keep re-narrowing that domain
// after every backtrack has to be reconsidered unconditionally.
func (s *Store) Pin(c Constraint) {
	idx := len(s.constraints)
	s.Post(c)
	s.pinned = append(s.pinned, idx)
}

func (s *Store) enqueue(id int) {
	for _, q := range s.queue {
		if q == id {
			return
		}
	}
	s.queue = append(s.queue, id)
}

// assign narrows v's domain to nd, recording the prior value on the
// trail. Returns ErrContradiction if nd is empty.
func (s *Store) assign(v Var, nd Domain) error {
	if nd.Equal(s.domains[v.id]) {
		return nil
	}
	s.trail = append(s.trail, change{id: v.id, dom: s.domains[v.id]})
	s.domains[v.id] = nd
	if nd.IsEmpty() {
		return ErrContradiction
	}
	s.enqueue(v.id)
	return nil
}

// Intersect narrows v's domain by intersecting it with o.
func (s *Store) Intersect(v Var, o Domain) error {
	return s.assign(v, s.domains[v.id].Intersect(o))
}

// Remove removes value from v's domain.
func (s *Store) Remove(v Var, value int) error {
	return s.assign(v, s.domains[v.id].Without(value))
}

// Assign narrows v's domain to the single value.
func (s *Store) Assign(v Var, value int) error {
	return s.assign(v, Singleton(s.domainSize, value))
}

// WorldIndex implements search.Trail.
func (s *Store) WorldIndex() int { return len(s.worldMarks) }

// WorldPush implements search.Trail by recording the current trail
// length as a restore point.
func (s *Store) WorldPush() {
	s.worldMarks = append(s.worldMarks, len(s.trail))
}

// WorldPop implements search.Trail by undoing every change recorded
// since the most recent WorldPush. Popping past world 0 is a driver
// bug, not a runtime condition to report, so it panics rather than
// returning an error the interface has no room for.
func (s *Store) WorldPop() {
	if len(s.worldMarks) == 0 {
		panic("csp: WorldPop with no world pushed")
	}
	mark := s.worldMarks[len(s.worldMarks)-1]
	s.worldMarks = s.worldMarks[:len(s.worldMarks)-1]
	s.undoTo(mark)
}

// WorldPopUntil implements search.Trail by popping worlds until the
// trail is back at world index target.
func (s *Store) WorldPopUntil(target int) error {
	if target < 0 || target > len(s.worldMarks) {
		return search.ErrInvalidWorld
	}
	for len(s.worldMarks) > target {
		s.WorldPop()
	}
	return nil
}

func (s *Store) undoTo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		ch := s.trail[i]
		s.domains[ch.id] = ch.dom
	}
	s.trail = s.trail[:mark]
	s.queue = s.queue[:0]
}

// Propagate implements search.PropagationEngine: it drains the pending
// queue, asking every constraint that watches a dequeued variable to
// filter again, until no variable changed in a full pass (fixpoint) or
// a constraint reports a contradiction.
func (s *Store) Propagate(ctx context.Context) (search.CutResult, error) {
	for _, ci := range s.pinned {
		for _, v := range s.constraints[ci].Vars() {
			s.enqueue(v.id)
		}
	}
	for len(s.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return search.Applied, err
		}
		id := s.queue[0]
		s.queue = s.queue[1:]
		for _, ci := range s.watchers[id] {
			if err := s.constraints[ci].Filter(s); err != nil {
				if errors.Is(err, ErrContradiction) {
					s.queue = s.queue[:0]
					return search.CutContradiction, nil
				}
				return search.Applied, err
			}
		}
	}
	return search.Applied, nil
}
