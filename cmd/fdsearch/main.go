// Command fdsearch runs one of the bundled finite-domain puzzles
// through the search driver and reports its measures. It exists to
// exercise the driver from a real binary rather than only from package
// tests.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/solverkit/fdsearch/pkg/csp"
	"github.com/solverkit/fdsearch/pkg/search"
)

func main() {
	puzzle := flag.String("puzzle", "nqueens", "puzzle to solve: nqueens, alldiff")
	size := flag.Int("size", 8, "puzzle size (board dimension or variable count, depending on the puzzle)")
	nodeLimit := flag.Int64("node-limit", 0, "stop after this many nodes are visited (0 = unlimited)")
	timeLimit := flag.Duration("time-limit", 0, "stop after this much wall-clock time (0 = unlimited)")
	flag.Parse()

	var d *search.Driver
	switch *puzzle {
	case "nqueens":
		d = buildNQueens(*size)
	case "alldiff":
		d = buildAllDifferent(*size)
	default:
		log.Fatalf("unknown puzzle %q (want nqueens or alldiff)", *puzzle)
	}

	if *nodeLimit > 0 {
		d.PlugMonitor(&search.NodeLimit{Max: *nodeLimit})
	}
	if *timeLimit > 0 {
		d.PlugMonitor(search.NewTimeLimit(*timeLimit))
	}

	start := time.Now()
	if err := d.Launch(false); err != nil {
		log.Fatalf("launch: %v", err)
	}
	elapsed := time.Since(start)

	log.Printf("puzzle=%s size=%d reason=%s outcome=%+v", *puzzle, *size, d.Reason(), d.Measures().Outcome())
	log.Printf("nodes=%d backtracks=%d fails=%d solutions=%d peak_depth=%d wall=%s",
		d.Measures().NodeCount(), d.Measures().BacktrackCount(), d.Measures().FailCount(),
		d.Measures().SolutionCount(), d.Measures().PeakDepth(), elapsed)
}

func buildNQueens(n int) *search.Driver {
	store := csp.NewStore(n)
	rows := store.NewVars(n)
	store.Post(csp.AllDifferent{Terms: rows})
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			store.Post(csp.DiagonalDifferent{X: rows[i], Y: rows[j], Offset: j - i})
		}
	}
	strat := &csp.FirstFailStrategy{Store: store, Vars: rows}
	return search.New(store, store, strat)
}

func buildAllDifferent(n int) *search.Driver {
	store := csp.NewStore(n)
	vars := store.NewVars(n)
	store.Post(csp.AllDifferent{Terms: vars})
	strat := &csp.LexStrategy{Store: store, Vars: vars}
	return search.New(store, store, strat)
}
