package instrument

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/solverkit/fdsearch/pkg/csp"
	"github.com/solverkit/fdsearch/pkg/search"
)

func TestTracingMonitorEmitsSpanPerTransition(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mon := NewTracingMonitor(tp.Tracer("fdsearch-test"))

	store := csp.NewStore(2)
	vars := store.NewVars(1)
	strat := &csp.LexStrategy{Store: store, Vars: vars}
	d := search.New(store, store, strat,
		search.WithContext(context.Background()),
		search.WithMonitor(mon))

	if err := d.Launch(false); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) == 0 {
		t.Fatalf("expected at least one span, got 0")
	}
	names := map[string]bool{}
	for _, s := range spans {
		names[s.Name] = true
	}
	for _, want := range []string{"init", "initial_propagation", "open_node", "close"} {
		if !names[want] {
			t.Errorf("missing expected span %q, got names %v", want, names)
		}
	}
}

func TestTracingMonitorNoDanglingOpenSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	mon := NewTracingMonitor(tp.Tracer("fdsearch-test"))

	store := csp.NewStore(2)
	vars := store.NewVars(1)
	strat := &csp.LexStrategy{Store: store, Vars: vars}
	d := search.New(store, store, strat,
		search.WithContext(context.Background()),
		search.WithMonitor(mon))

	if err := d.Launch(false); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	mon.mu.Lock()
	open := len(mon.open)
	mon.mu.Unlock()
	if open != 0 {
		t.Fatalf("tracingMonitor left %d span(s) open after close", open)
	}
}
