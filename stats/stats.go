// Package stats collects per-phase timing and counters for one F4 step,
// recast from the original's global mutable statistics into an owned
// record threaded through each entry point (spec §9).
package stats

import (
	"fmt"
	"io"
	"time"
)

// Phase names a pipeline stage stats are collected for.
type Phase string

const (
	PhaseSelect    Phase = "select"
	PhaseSymbolic  Phase = "symbolic"
	PhaseConvert   Phase = "convert"
	PhaseReduce    Phase = "reduce"
	PhaseConvertBk Phase = "convert-back"
	PhaseInterred  Phase = "interreduce"
)

// Stats accumulates counters and durations for one F4 step. Zero value is
// ready to use; not safe for concurrent writes to the same Phase from
// multiple goroutines (each pipeline phase runs as a join barrier, so
// contention never arises — see SPEC_FULL.md §5).
type Stats struct {
	Durations map[Phase]time.Duration

	Rows           int
	Reductions     int
	ZeroReductions int
	NewPivots      int
	MultsScaled    int64 // multiplier-applications, scaled by 1/1000
	AddsScaled     int64 // accumulator adds, scaled by 1/1000
}

// New returns a ready-to-use Stats.
func New() *Stats {
	return &Stats{Durations: make(map[Phase]time.Duration)}
}

// Time runs fn, recording its wall-clock duration under phase.
func (s *Stats) Time(phase Phase, fn func()) {
	start := time.Now()
	fn()
	if s.Durations == nil {
		s.Durations = make(map[Phase]time.Duration)
	}
	s.Durations[phase] += time.Since(start)
}

// AddMults adds n multiplier applications to the running scaled counter.
func (s *Stats) AddMults(n int64) { s.MultsScaled += n / 1000 }

// AddAdds adds n accumulator adds to the running scaled counter.
func (s *Stats) AddAdds(n int64) { s.AddsScaled += n / 1000 }

// Report writes a human-readable summary to w. level mirrors the
// engine's info_level config: 0 prints nothing, 1 a one-line summary, 2
// adds per-phase timings, 3 adds the scaled mult/add counters.
func (s *Stats) Report(w io.Writer, level int) {
	if level <= 0 {
		return
	}
	fmt.Fprintf(w, "f4: rows=%d reductions=%d zero=%d new_pivots=%d\n",
		s.Rows, s.Reductions, s.ZeroReductions, s.NewPivots)
	if level < 2 {
		return
	}
	for _, phase := range []Phase{PhaseSelect, PhaseSymbolic, PhaseConvert, PhaseReduce, PhaseConvertBk, PhaseInterred} {
		if d, ok := s.Durations[phase]; ok {
			fmt.Fprintf(w, "  %-13s %v\n", phase, d)
		}
	}
	if level < 3 {
		return
	}
	fmt.Fprintf(w, "  mults(x1000)=%d adds(x1000)=%d\n", s.MultsScaled, s.AddsScaled)
}
