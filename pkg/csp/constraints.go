package csp

// Constraint is a filtering rule over one or more Store variables. It
// is re-invoked by Store.Propagate whenever one of its Vars changes,
// using a queue-and-revisit style rather than a full arc-consistency
// closure.
type Constraint interface {
	// Vars returns the variables this constraint watches.
	Vars() []Var
	// Filter narrows domains against the constraint's own Vars,
	// returning ErrContradiction if it empties one.
	Filter(s *Store) error
}

// Equal constrains X == Y by intersecting their domains both ways.
type Equal struct{ X, Y Var }

func (c Equal) Vars() []Var { return []Var{c.X, c.Y} }

func (c Equal) Filter(s *Store) error {
	dx, dy := s.Domain(c.X), s.Domain(c.Y)
	both := dx.Intersect(dy)
	if err := s.Intersect(c.X, both); err != nil {
		return err
	}
	return s.Intersect(c.Y, both)
}

// NotEqual constrains X != Y: whenever one side is a singleton, the
// other has that value removed.
type NotEqual struct{ X, Y Var }

func (c NotEqual) Vars() []Var { return []Var{c.X, c.Y} }

func (c NotEqual) Filter(s *Store) error {
	dx, dy := s.Domain(c.X), s.Domain(c.Y)
	if dx.IsSingleton() {
		if err := s.Remove(c.Y, dx.Value()); err != nil {
			return err
		}
	}
	dy = s.Domain(c.Y)
	if dy.IsSingleton() {
		if err := s.Remove(c.X, dy.Value()); err != nil {
			return err
		}
	}
	return nil
}

// LessThanOrEqual constrains X <= Y by clipping each domain to the
// other's min/max bound.
type LessThanOrEqual struct{ X, Y Var }

func (c LessThanOrEqual) Vars() []Var { return []Var{c.X, c.Y} }

func (c LessThanOrEqual) Filter(s *Store) error {
	dx, dy := s.Domain(c.X), s.Domain(c.Y)
	yMax := domainMax(dy)
	xMin := dx.Min()
	if err := removeAbove(s, c.X, yMax); err != nil {
		return err
	}
	if err := removeBelow(s, c.Y, xMin); err != nil {
		return err
	}
	return nil
}

func domainMax(d Domain) int {
	max := -1
	d.Each(func(v int) { max = v })
	return max
}

// removeAbove and removeBelow have no early-out for a negative/out-of-
// range bound: a bound below the domain's lowest possible value (for
// removeAbove) or above its highest (for removeBelow) legitimately
// means "remove everything", surfacing as ErrContradiction through
// Remove rather than silently doing nothing.

func removeAbove(s *Store, v Var, bound int) error {
	var toRemove []int
	s.Domain(v).Each(func(val int) {
		if val > bound {
			toRemove = append(toRemove, val)
		}
	})
	for _, val := range toRemove {
		if err := s.Remove(v, val); err != nil {
			return err
		}
	}
	return nil
}

func removeBelow(s *Store, v Var, bound int) error {
	var toRemove []int
	s.Domain(v).Each(func(val int) {
		if val < bound {
			toRemove = append(toRemove, val)
		}
	})
	for _, val := range toRemove {
		if err := s.Remove(v, val); err != nil {
			return err
		}
	}
	return nil
}

// SumEquals constrains sum(Vars) == Target via simple bound filtering:
// each variable's domain is clipped so that the remaining variables can
// still reach Target.
type SumEquals struct {
	Terms  []Var
	Target int
}

func (c SumEquals) Vars() []Var { return c.Terms }

func (c SumEquals) Filter(s *Store) error {
	minSum, maxSum := 0, 0
	mins := make([]int, len(c.Terms))
	maxs := make([]int, len(c.Terms))
	for i, v := range c.Terms {
		d := s.Domain(v)
		mins[i] = d.Min()
		maxs[i] = domainMax(d)
		minSum += mins[i]
		maxSum += maxs[i]
	}
	for i, v := range c.Terms {
		// v's value cannot exceed Target - (sum of others' mins).
		upper := c.Target - (minSum - mins[i])
		if err := removeAbove(s, v, upper); err != nil {
			return err
		}
		// v's value cannot be below Target - (sum of others' maxes).
		lower := c.Target - (maxSum - maxs[i])
		if err := removeBelow(s, v, lower); err != nil {
			return err
		}
	}
	return nil
}

// AllDifferent constrains every pair of Vars to take distinct values.
// It filters with pairwise singleton propagation rather than full
// bipartite matching.
type AllDifferent struct {
	Terms []Var
}

func (c AllDifferent) Vars() []Var { return c.Terms }

func (c AllDifferent) Filter(s *Store) error {
	for i, v := range c.Terms {
		d := s.Domain(v)
		if !d.IsSingleton() {
			continue
		}
		val := d.Value()
		for j, other := range c.Terms {
			if i == j {
				continue
			}
			if err := s.Remove(other, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// DiagonalDifferent constrains X - Y to avoid both Offset and -Offset,
// the board-diagonal non-attack rule: two queens Offset rows apart may
// not also sit Offset columns apart in either direction.
type DiagonalDifferent struct {
	X, Y   Var
	Offset int
}

func (c DiagonalDifferent) Vars() []Var { return []Var{c.X, c.Y} }

func (c DiagonalDifferent) Filter(s *Store) error {
	dx, dy := s.Domain(c.X), s.Domain(c.Y)
	if dx.IsSingleton() {
		x := dx.Value()
		if err := s.Remove(c.Y, x-c.Offset); err != nil {
			return err
		}
		if err := s.Remove(c.Y, x+c.Offset); err != nil {
			return err
		}
	}
	dy = s.Domain(c.Y)
	if dy.IsSingleton() {
		y := dy.Value()
		if err := s.Remove(c.X, y-c.Offset); err != nil {
			return err
		}
		if err := s.Remove(c.X, y+c.Offset); err != nil {
			return err
		}
	}
	return nil
}

// LinearEquals constrains sum(Coeffs[i]*Terms[i]) == Target via bound
// filtering, generalizing SumEquals to weighted, possibly negative
// coefficients (place-value digit encodings, balance equations with a
// subtracted side, and the like).
type LinearEquals struct {
	Terms  []Var
	Coeffs []int
	Target int
}

func (c LinearEquals) Vars() []Var { return c.Terms }

func (c LinearEquals) Filter(s *Store) error {
	minSum, maxSum := 0, 0
	mins := make([]int, len(c.Terms))
	maxs := make([]int, len(c.Terms))
	for i, v := range c.Terms {
		d := s.Domain(v)
		lo, hi := d.Min(), domainMax(d)
		coeff := c.Coeffs[i]
		if coeff >= 0 {
			mins[i], maxs[i] = coeff*lo, coeff*hi
		} else {
			mins[i], maxs[i] = coeff*hi, coeff*lo
		}
		minSum += mins[i]
		maxSum += maxs[i]
	}
	for i, v := range c.Terms {
		coeff := c.Coeffs[i]
		if coeff == 0 {
			continue
		}
		upperTerm := c.Target - (minSum - mins[i])
		lowerTerm := c.Target - (maxSum - maxs[i])
		if coeff > 0 {
			if err := removeAbove(s, v, floorDiv(upperTerm, coeff)); err != nil {
				return err
			}
			if err := removeBelow(s, v, ceilDiv(lowerTerm, coeff)); err != nil {
				return err
			}
		} else {
			if err := removeBelow(s, v, ceilDiv(upperTerm, coeff)); err != nil {
				return err
			}
			if err := removeAbove(s, v, floorDiv(lowerTerm, coeff)); err != nil {
				return err
			}
		}
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
