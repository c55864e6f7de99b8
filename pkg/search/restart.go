package search

// Restart policies are external monitors that call Restart from an
// after_* hook; the driver only guarantees that a restart requested
// mid-transition is honored before the next transition runs.
// GeometricRestart and LubyRestart are the two classic CP restart
// policies built on top of that contract.

// GeometricRestart triggers a restart every time the node count since
// the last restart crosses a threshold that grows geometrically.
type GeometricRestart struct {
	BaseMonitor
	Base       int64
	Factor     float64
	threshold  float64
	lastNodes  int64
}

// NewGeometricRestart returns a policy whose first cutoff is base nodes,
// growing by factor after every restart.
func NewGeometricRestart(base int64, factor float64) *GeometricRestart {
	if factor <= 1 {
		factor = 1.1
	}
	return &GeometricRestart{Base: base, Factor: factor, threshold: float64(base)}
}

// AfterOpenNode checks nodes explored since the last restart.
func (r *GeometricRestart) AfterOpenNode(d *Driver) {
	sinceLast := d.Measures().NodeCount() - r.lastNodes
	if float64(sinceLast) >= r.threshold {
		r.lastNodes = d.Measures().NodeCount()
		r.threshold *= r.Factor
		d.Restart()
	}
}

// LubyRestart triggers restarts on the Luby sequence (1,1,2,1,1,2,4,...)
// scaled by a unit node count, which is known to bound the expected
// regret of unlucky branching orders.
type LubyRestart struct {
	BaseMonitor
	Unit      int64
	index     int
	lastNodes int64
}

// NewLubyRestart returns a policy whose unit cutoff is Unit nodes.
func NewLubyRestart(unit int64) *LubyRestart {
	return &LubyRestart{Unit: unit, index: 0}
}

// luby returns the i-th term (0-indexed) of the Luby sequence
// 1,1,2,1,1,2,4,1,1,2,1,1,2,4,8,... using the standard iterative
// construction (as used by minisat-family restart schedules).
func luby(i int) int64 {
	size, seq := int64(1), 0
	for size < int64(i)+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != int64(i) {
		size = (size - 1) / 2
		seq--
		i = i % int(size)
	}
	return int64(1) << uint(seq)
}

// AfterOpenNode checks nodes explored since the last restart against the
// current Luby term.
func (r *LubyRestart) AfterOpenNode(d *Driver) {
	cutoff := luby(r.index) * r.Unit
	sinceLast := d.Measures().NodeCount() - r.lastNodes
	if sinceLast >= cutoff {
		r.lastNodes = d.Measures().NodeCount()
		r.index++
		d.Restart()
	}
}
