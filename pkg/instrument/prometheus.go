// Package instrument provides optional search.Monitor implementations
// that expose a Driver's progress to Prometheus and OpenTelemetry,
// without the driver or any collaborator package knowing either exists.
package instrument

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/solverkit/fdsearch/pkg/search"
)

// PrometheusMonitor mirrors a Driver's search.Measures onto a set of
// Prometheus collectors, namespaced "fdsearch_". It is a search.Monitor
// like any other: PlugMonitor it onto a Driver and every hook below
// re-reads the authoritative counters straight off search.Measures,
// rather than keeping a second, independently incremented copy that
// could drift from it.
type PrometheusMonitor struct {
	search.BaseMonitor

	nodes       prometheus.Gauge
	backtracks  prometheus.Gauge
	fails       prometheus.Gauge
	restarts    prometheus.Gauge
	solutions   prometheus.Gauge
	depth       prometheus.Gauge
	runDuration prometheus.Histogram

	mu      sync.Mutex
	enabled bool
}

// NewPrometheusMonitor creates and registers the fdsearch_* metrics
// against registry. A nil registry registers against
// prometheus.DefaultRegisterer.
func NewPrometheusMonitor(registry prometheus.Registerer) *PrometheusMonitor {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &PrometheusMonitor{
		enabled: true,
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "nodes_total",
			Help:      "Number of OPEN_NODE transitions visited so far.",
		}),
		backtracks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "backtracks_total",
			Help:      "Number of UP_BRANCH ascents so far.",
		}),
		fails: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "fails_total",
			Help:      "Number of propagation or cut contradictions so far.",
		}),
		restarts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "restarts_total",
			Help:      "Number of RESTART transitions run so far.",
		}),
		solutions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "solutions_total",
			Help:      "Number of solutions recorded so far.",
		}),
		depth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "fdsearch",
			Name:      "decision_depth",
			Help:      "Current decision-chain depth.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fdsearch",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a Launch-to-close run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (p *PrometheusMonitor) sync(d *search.Driver) {
	m := d.Measures()
	p.nodes.Set(float64(m.NodeCount()))
	p.backtracks.Set(float64(m.BacktrackCount()))
	p.fails.Set(float64(m.FailCount()))
	p.restarts.Set(float64(m.RestartCount()))
	p.solutions.Set(float64(m.SolutionCount()))
	p.depth.Set(float64(d.CurrentDepth()))
}

// AfterOpenNode refreshes every gauge after each node visit.
func (p *PrometheusMonitor) AfterOpenNode(d *search.Driver) {
	if p.isEnabled() {
		p.sync(d)
	}
}

// AfterUpBranch refreshes every gauge after each backtrack.
func (p *PrometheusMonitor) AfterUpBranch(d *search.Driver) {
	if p.isEnabled() {
		p.sync(d)
	}
}

// AfterRestart refreshes every gauge after each restart.
func (p *PrometheusMonitor) AfterRestart(d *search.Driver) {
	if p.isEnabled() {
		p.sync(d)
	}
}

// OnSolution refreshes every gauge as soon as a solution is recorded.
func (p *PrometheusMonitor) OnSolution(d *search.Driver) {
	if p.isEnabled() {
		p.sync(d)
	}
}

// AfterClose does a final sync and observes the completed run's wall
// time.
func (p *PrometheusMonitor) AfterClose(d *search.Driver) {
	if !p.isEnabled() {
		return
	}
	p.sync(d)
	p.runDuration.Observe(d.Measures().WallTime().Seconds())
}

// Disable stops this monitor from updating metrics, without unplugging
// it from the driver (useful in tests that want to assert metrics stay
// put).
func (p *PrometheusMonitor) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = false
}

// Enable re-enables metric recording after Disable.
func (p *PrometheusMonitor) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = true
}

func (p *PrometheusMonitor) isEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}
