package core

import (
	"context"
	"runtime"
	"time"

	"github.com/encodeous/ffscan/perf"
	"github.com/encodeous/ffscan/state"
	"golang.org/x/sync/errgroup"
)

type ScanOptions struct {
	// Workers bounds the number of scenarios evaluated concurrently, <= 0 uses GOMAXPROCS
	Workers int
	// ExpectedDrops counts drops caused by a failed node being the source or
	// destination separately from other drops
	ExpectedDrops bool
	// RecordPaths keeps the walked path of every tested pair in the report
	RecordPaths bool
	Observer    Observer
}

func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Workers:       runtime.GOMAXPROCS(0),
		ExpectedDrops: true,
	}
}

// Scenarios enumerates every single link failure followed by every single node failure
func Scenarios(topo *state.Topology) []state.Scenario {
	scenarios := make([]state.Scenario, 0, topo.LinkCount()+topo.NodeCount())
	for _, l := range topo.Links() {
		scenarios = append(scenarios, state.LinkScenario(l.V1, l.V2))
	}
	for _, n := range topo.Nodes() {
		scenarios = append(scenarios, state.NodeScenario(n))
	}
	return scenarios
}

// EvaluateScenario applies the failure to a private copy of baseline and
// forwards between every ordered pair of distinct nodes.
func EvaluateScenario(nodes []state.NodeId, baseline *state.RoutingTable, sc state.Scenario, opts ScanOptions) state.ScenarioResult {
	o := observerOrDiscard(opts.Observer)
	start := time.Now()
	table := baseline.Clone()
	sc.Apply(table)

	res := state.ScenarioResult{Scenario: sc}
	for _, src := range nodes {
		for _, dst := range nodes {
			if src == dst {
				continue
			}
			outcome, path := Forward(table, src, dst)
			res.Tally.Record(outcome, opts.ExpectedDrops && sc.IsEndpoint(src, dst))
			switch outcome {
			case state.Dropped:
				if !sc.IsEndpoint(src, dst) {
					o.Log(PathDropped, "path dropped", "scenario", sc, "src", src, "dst", dst, "path", path)
				}
			case state.Looping:
				o.Log(PathLooped, "forwarding loop", "scenario", sc, "src", src, "dst", dst, "path", path)
			}
			if opts.RecordPaths {
				res.Paths = append(res.Paths, state.PathResult{Src: src, Dst: dst, Outcome: outcome, Path: path})
			}
		}
	}
	perf.ScenarioLatency.Add(float64(time.Since(start).Microseconds()))
	o.Log(ScenarioEvaluated, "scenario evaluated", "scenario", sc,
		"ok", res.Tally.Delivered, "drop", res.Tally.Dropped, "loop", res.Tally.Looping)
	return res
}

// Scan evaluates every single link and node failure of topo against the
// baseline table. Neither topo nor baseline is modified, and they must not be
// modified by anyone else until Scan returns. Scenarios are evaluated in
// parallel, the report lists them in the order returned by Scenarios.
func Scan(ctx context.Context, topo *state.Topology, baseline *state.RoutingTable, opts ScanOptions) (*state.Report, error) {
	o := observerOrDiscard(opts.Observer)
	start := time.Now()
	nodes := topo.Nodes()
	scenarios := Scenarios(topo)
	results := make([]state.ScenarioResult, len(scenarios))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = EvaluateScenario(nodes, baseline, sc, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.Log(IncompleteScan, "scan interrupted", "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		o.Log(IncompleteScan, "scan interrupted", "err", err)
		return nil, err
	}

	report := &state.Report{
		NodeCount: topo.NodeCount(),
		LinkCount: topo.LinkCount(),
		Scenarios: results,
		ScanTime:  time.Since(start),
	}
	for _, r := range results {
		report.Total.Add(r.Tally)
	}
	return report, nil
}

// Analyze builds the baseline routing table of topo and scans every single failure against it.
func Analyze(ctx context.Context, topo *state.Topology, opts ScanOptions) (*state.Report, *state.RoutingTable, error) {
	table, stats, err := BuildRoutingTable(topo, opts.Observer)
	if err != nil {
		return nil, nil, err
	}
	report, err := Scan(ctx, topo, table, opts)
	if err != nil {
		return nil, table, err
	}
	report.Computations = stats.Computations
	report.BuildTime = stats.Elapsed
	return report, table, nil
}
