package state

import (
	"maps"
	"slices"
	"strings"
)

// RoutingTable holds, for every node, the ordered next hops towards every
// destination. Index 0 is the primary next hop, index 1 the backup.
type RoutingTable struct {
	Routes map[NodeId]map[NodeId][]NodeId
}

func NewRoutingTable(nodes []NodeId) *RoutingTable {
	rt := &RoutingTable{
		Routes: make(map[NodeId]map[NodeId][]NodeId, len(nodes)),
	}
	for _, n := range nodes {
		rt.Routes[n] = make(map[NodeId][]NodeId)
	}
	return rt
}

// AddRoute appends nh to the candidates of node towards dst. It returns
// false if the entry already holds MaxNextHops candidates.
func (t *RoutingTable) AddRoute(node, dst, nh NodeId) bool {
	row, ok := t.Routes[node]
	if !ok {
		row = make(map[NodeId][]NodeId)
		t.Routes[node] = row
	}
	if len(row[dst]) >= MaxNextHops {
		return false
	}
	row[dst] = append(row[dst], nh)
	return true
}

// NextHops returns the candidates of node towards dst, nil if there are none.
func (t *RoutingTable) NextHops(node, dst NodeId) []NodeId {
	row, ok := t.Routes[node]
	if !ok {
		return nil
	}
	return row[dst]
}

func (t *RoutingTable) Clone() *RoutingTable {
	routes := make(map[NodeId]map[NodeId][]NodeId, len(t.Routes))
	for node, row := range t.Routes {
		nrow := make(map[NodeId][]NodeId, len(row))
		for dst, nhs := range row {
			nrow[dst] = slices.Clone(nhs)
		}
		routes[node] = nrow
	}
	return &RoutingTable{Routes: routes}
}

// RemoveLinkRoute drops every candidate that would forward over the link a-b.
func (t *RoutingTable) RemoveLinkRoute(a, b NodeId) {
	t.removeNextHop(a, b)
	t.removeNextHop(b, a)
}

// RemoveNodeRoute removes every route through n, and every route held by n.
func (t *RoutingTable) RemoveNodeRoute(n NodeId) {
	for node, row := range t.Routes {
		if node == n {
			for dst := range row {
				row[dst] = row[dst][:0]
			}
			continue
		}
		t.removeNextHop(node, n)
	}
}

func (t *RoutingTable) removeNextHop(node, nh NodeId) {
	row, ok := t.Routes[node]
	if !ok {
		return
	}
	for dst, nhs := range row {
		// only the first occurrence goes, like a link going down once
		if idx := slices.Index(nhs, nh); idx != -1 {
			row[dst] = slices.Delete(nhs, idx, idx+1)
		}
	}
}

func (t *RoutingTable) Nodes() []NodeId {
	return slices.Sorted(maps.Keys(t.Routes))
}

func (t *RoutingTable) Destinations(node NodeId) []NodeId {
	return slices.Sorted(maps.Keys(t.Routes[node]))
}

// StringNode renders the routes held by a single node
func (t *RoutingTable) StringNode(node NodeId) string {
	sb := strings.Builder{}
	sb.WriteString("** " + string(node) + " routes:\n")
	for _, dst := range t.Destinations(node) {
		sb.WriteString(string(dst) + ": [")
		for i, nh := range t.Routes[node][dst] {
			if i != 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(string(nh))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

func (t *RoutingTable) String() string {
	out := make([]string, 0, len(t.Routes))
	for _, node := range t.Nodes() {
		out = append(out, t.StringNode(node))
	}
	return strings.Join(out, "\n")
}
