package core

import (
	"fmt"
	"time"

	"github.com/encodeous/ffscan/state"
)

type BuildStats struct {
	// Computations is the number of shortest path runs performed
	Computations int
	Elapsed      time.Duration
}

// BuildRoutingTable computes a primary and, where one exists, a secondary next
// hop for every node towards every destination.
//
// The primary is the next hop on the shortest path. The secondary is the next
// hop on the shortest path once the link to the primary is removed, so it only
// protects against the failure of that local link. The topology is modified
// while the table is built and restored before returning; it must not be
// shared with other goroutines in the meantime.
func BuildRoutingTable(topo *state.Topology, o Observer) (*state.RoutingTable, BuildStats, error) {
	o = observerOrDiscard(o)
	start := time.Now()
	stats := BuildStats{}
	rt := state.NewRoutingTable(topo.Nodes())

	for _, dst := range topo.Nodes() {
		best := ComputeSPF(topo, dst)
		stats.Computations++

		for _, src := range topo.Nodes() {
			nh, ok := best.NextHop[src]
			if !ok {
				continue
			}
			rt.AddRoute(src, dst, nh)
			o.Log(PrimarySelected, "primary next hop", "node", src, "dst", dst, "nh", nh, "cost", best.Cost[src])

			second, err := detour(topo, dst, src, nh)
			stats.Computations++
			if err != nil {
				o.Log(InconsistentState, "failed to compute secondary next hop", "node", src, "dst", dst, "err", err)
				return nil, stats, err
			}
			if alt, ok := second.NextHop[src]; ok {
				rt.AddRoute(src, dst, alt)
				o.Log(SecondarySelected, "secondary next hop", "node", src, "dst", dst, "nh", alt, "cost", second.Cost[src])
			} else {
				o.Log(NoSecondary, "no secondary next hop", "node", src, "dst", dst)
			}
		}
	}
	stats.Elapsed = time.Since(start)
	return rt, stats, nil
}

// detour computes the shortest paths towards dst with the link src-nh taken
// down, then brings the link back up with its original cost.
func detour(topo *state.Topology, dst, src, nh state.NodeId) (SpfResult, error) {
	cost, ok := topo.Cost(src, nh)
	if !ok {
		return SpfResult{}, fmt.Errorf("primary next hop %s of %s is not a neighbour", nh, src)
	}
	if err := topo.RemoveLink(src, nh); err != nil {
		return SpfResult{}, err
	}
	res := ComputeSPF(topo, dst)
	if err := topo.AddLink(src, nh, cost); err != nil {
		return SpfResult{}, fmt.Errorf("restoring link %s-%s: %w", src, nh, err)
	}
	return res, nil
}
