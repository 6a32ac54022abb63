package core

import (
	"github.com/encodeous/ffscan/perf"
	"github.com/encodeous/ffscan/state"
)

// SpfResult holds the shortest paths from every reachable node towards Source
type SpfResult struct {
	Source state.NodeId
	// Cost is the path cost towards Source, summed in 64 bits so paths of
	// max cost links cannot wrap around
	Cost map[state.NodeId]uint64
	// NextHop is the next node on the best path towards Source
	NextHop map[state.NodeId]state.NodeId
}

// ComputeSPF runs Dijkstra from source over the current topology. Costs must
// be non-negative. Among equal cost candidates, the lowest NodeId is settled
// first.
func ComputeSPF(topo *state.Topology, source state.NodeId) SpfResult {
	perf.SpfComputations.Add(1)
	res := SpfResult{
		Source:  source,
		Cost:    map[state.NodeId]uint64{source: 0},
		NextHop: make(map[state.NodeId]state.NodeId),
	}

	unsettled := make(map[state.NodeId]struct{}, topo.NodeCount())
	for _, n := range topo.Nodes() {
		unsettled[n] = struct{}{}
	}
	unsettled[source] = struct{}{}

	for len(unsettled) > 0 {
		var cur state.NodeId
		found := false
		for n := range unsettled {
			c, ok := res.Cost[n]
			if !ok {
				continue
			}
			if !found || c < res.Cost[cur] || c == res.Cost[cur] && n < cur {
				cur = n
				found = true
			}
		}
		if !found {
			break // everything left is unreachable
		}
		delete(unsettled, cur)

		curCost := res.Cost[cur]
		for _, neigh := range topo.Neighbours(cur) {
			w, ok := topo.Cost(cur, neigh)
			if !ok {
				continue
			}
			total := curCost + uint64(w)
			if known, ok := res.Cost[neigh]; !ok || total < known {
				res.Cost[neigh] = total
				res.NextHop[neigh] = cur
			}
		}
	}
	return res
}

// Reachable reports whether node has a path towards the source
func (r SpfResult) Reachable(node state.NodeId) bool {
	_, ok := r.Cost[node]
	return ok
}
