package instrument

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/solverkit/fdsearch/pkg/search"
)

// TracingMonitor emits one OpenTelemetry span per transition the
// driver runs, opened on before_X and closed on after_X — suspension
// points are transition boundaries, so a span's lifetime is exactly
// one transition's work. Spans are kept in a small map keyed by
// transition name rather than nested, since the driver's state machine
// is flat: at most one transition is open at a time.
type TracingMonitor struct {
	search.BaseMonitor

	tracer trace.Tracer

	mu   sync.Mutex
	open map[string]trace.Span
}

// NewTracingMonitor wraps tracer (e.g. otel.Tracer("fdsearch")) as a
// search.Monitor.
func NewTracingMonitor(tracer trace.Tracer) *TracingMonitor {
	return &TracingMonitor{
		tracer: tracer,
		open:   make(map[string]trace.Span),
	}
}

func (t *TracingMonitor) start(name string, d *search.Driver) {
	_, span := t.tracer.Start(context.Background(), name)
	span.SetAttributes(
		attribute.Int64("fdsearch.node_count", d.Measures().NodeCount()),
		attribute.Int("fdsearch.depth", d.CurrentDepth()),
	)
	t.mu.Lock()
	t.open[name] = span
	t.mu.Unlock()
}

func (t *TracingMonitor) end(name string, d *search.Driver) {
	t.mu.Lock()
	span, ok := t.open[name]
	delete(t.open, name)
	t.mu.Unlock()
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("fdsearch.depth_after", d.CurrentDepth()))
	span.End()
}

func (t *TracingMonitor) BeforeInit(d *search.Driver)               { t.start("init", d) }
func (t *TracingMonitor) AfterInit(d *search.Driver)                { t.end("init", d) }
func (t *TracingMonitor) BeforeInitialPropagation(d *search.Driver) { t.start("initial_propagation", d) }
func (t *TracingMonitor) AfterInitialPropagation(d *search.Driver)  { t.end("initial_propagation", d) }
func (t *TracingMonitor) BeforeOpenNode(d *search.Driver)           { t.start("open_node", d) }
func (t *TracingMonitor) AfterOpenNode(d *search.Driver)            { t.end("open_node", d) }
func (t *TracingMonitor) BeforeDownLeft(d *search.Driver)           { t.start("down_left", d) }
func (t *TracingMonitor) AfterDownLeft(d *search.Driver)            { t.end("down_left", d) }
func (t *TracingMonitor) BeforeDownRight(d *search.Driver)          { t.start("down_right", d) }
func (t *TracingMonitor) AfterDownRight(d *search.Driver)           { t.end("down_right", d) }
func (t *TracingMonitor) BeforeUpBranch(d *search.Driver)           { t.start("up_branch", d) }
func (t *TracingMonitor) AfterUpBranch(d *search.Driver)            { t.end("up_branch", d) }
func (t *TracingMonitor) BeforeRestart(d *search.Driver)            { t.start("restart", d) }
func (t *TracingMonitor) AfterRestart(d *search.Driver)             { t.end("restart", d) }
func (t *TracingMonitor) BeforeResume(d *search.Driver)             { t.start("resume", d) }
func (t *TracingMonitor) AfterResume(d *search.Driver)              { t.end("resume", d) }
func (t *TracingMonitor) BeforeClose(d *search.Driver)              { t.start("close", d) }
func (t *TracingMonitor) AfterClose(d *search.Driver)               { t.end("close", d) }

// AfterInterrupt annotates whatever span is currently open, if any,
// rather than opening a new one of its own — interrupt is a property
// of the transition in flight, not a transition itself.
func (t *TracingMonitor) AfterInterrupt(d *search.Driver, reason search.Reason) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, span := range t.open {
		span.SetStatus(codes.Error, reason.String())
		span.SetAttributes(attribute.String("fdsearch.interrupt_reason", reason.String()))
	}
}

// OnSolution annotates the currently open span (always open_node) with
// the solution count reached.
func (t *TracingMonitor) OnSolution(d *search.Driver) {
	t.mu.Lock()
	span, ok := t.open["open_node"]
	t.mu.Unlock()
	if !ok {
		return
	}
	span.AddEvent("solution")
	span.SetAttributes(attribute.Int64("fdsearch.solution_count", d.Measures().SolutionCount()))
}
