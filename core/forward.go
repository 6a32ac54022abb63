package core

import (
	"slices"

	"github.com/encodeous/ffscan/state"
)

// Forward walks a packet from src to dst over table using fast failover: a
// node forwards to its primary next hop, unless the packet just arrived from
// it, in which case the secondary is used. The walk stops with Dropped when
// no usable next hop is left, and with Looping as soon as a node is visited
// twice.
func Forward(table *state.RoutingTable, src, dst state.NodeId) (state.Outcome, []state.NodeId) {
	cur := src
	prev, hasPrev := state.NodeId(""), false
	path := []state.NodeId{src}

	for cur != dst {
		nhs := table.NextHops(cur, dst)
		if len(nhs) == 0 {
			return state.Dropped, path
		}
		next := nhs[0]
		if hasPrev && next == prev {
			if len(nhs) < 2 {
				return state.Dropped, path
			}
			next = nhs[1]
		}
		if slices.Contains(path, next) {
			return state.Looping, append(path, next)
		}
		path = append(path, next)
		prev, hasPrev = cur, true
		cur = next
	}
	return state.Delivered, path
}
