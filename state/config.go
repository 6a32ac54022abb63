package state

import (
	"fmt"
	"maps"
	"math"
	"net/netip"
	"slices"
	"strings"
)

type NodeCfg struct {
	Id NodeId `yaml:"id"`
	// Prefixes are the addresses reachable at this node, used to resolve trace destinations
	Prefixes []netip.Prefix `yaml:"prefixes,omitempty"`
}

type LinkCfg struct {
	A NodeId `yaml:"a"`
	B NodeId `yaml:"b"`
	// Cost defaults to DefaultCost when omitted
	Cost *int64 `yaml:"cost,omitempty"`
}

func (l LinkCfg) GetCost() uint32 {
	if l.Cost == nil {
		return DefaultCost
	}
	return uint32(*l.Cost)
}

// TopologyCfg is the on-disk description of a network snapshot
type TopologyCfg struct {
	Name  string    `yaml:"name,omitempty"`
	Nodes []NodeCfg `yaml:"nodes"`
	Links []LinkCfg `yaml:"links,omitempty"`
	Graph []string  `yaml:"graph,omitempty"` // unit cost links, see ParseGraph
}

func (c *TopologyCfg) NodeIds() []NodeId {
	ids := make([]NodeId, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		ids = append(ids, n.Id)
	}
	return ids
}

func (c *TopologyCfg) TryGetNode(node NodeId) *NodeCfg {
	idx := slices.IndexFunc(c.Nodes, func(cfg NodeCfg) bool {
		return cfg.Id == node
	})
	if idx == -1 {
		return nil
	}
	return &c.Nodes[idx]
}

func (c *TopologyCfg) IsNode(node NodeId) bool {
	return c.TryGetNode(node) != nil
}

// GetLinks merges the explicit links with the ones declared by the graph.
// Explicit links take precedence over graph links for the same pair.
func (c *TopologyCfg) GetLinks() ([]LinkCfg, error) {
	names := make([]string, 0, len(c.Nodes))
	for _, id := range c.NodeIds() {
		names = append(names, string(id))
	}
	seen := make(map[Link]struct{})
	links := make([]LinkCfg, 0, len(c.Links))
	for _, l := range c.Links {
		seen[MakeSortedPair(l.A, l.B)] = struct{}{}
		links = append(links, l)
	}
	if len(c.Graph) == 0 {
		return links, nil
	}
	pairs, err := ParseGraph(c.Graph, names)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if _, ok := seen[p]; ok {
			continue
		}
		links = append(links, LinkCfg{A: p.V1, B: p.V2})
	}
	return links, nil
}

// BuildTopology constructs the graph described by the config. The config
// should have passed TopologyConfigValidator.
func (c *TopologyCfg) BuildTopology() (*Topology, error) {
	topo := NewTopology()
	for _, n := range c.Nodes {
		topo.AddNode(n.Id)
	}
	links, err := c.GetLinks()
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if err := topo.AddLink(l.A, l.B, l.GetCost()); err != nil {
			return nil, fmt.Errorf("link %s-%s: %w", l.A, l.B, err)
		}
	}
	return topo, nil
}

func ExpandTopologyConfig(cfg *TopologyCfg) {
	for idx, node := range cfg.Nodes {
		if len(node.Prefixes) > 1 {
			node.Prefixes = CoalescePrefix(node.Prefixes)
		}
		cfg.Nodes[idx] = node
	}
}

func costInRange(c int64) bool {
	return c >= 0 && c <= math.MaxUint32
}

func parseSymbolList(s string, validSymbols []string) ([]string, error) {
	line := make([]string, 0)
	for _, x := range strings.Split(strings.TrimSpace(s), ",") {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		if !slices.Contains(validSymbols, x) {
			return nil, fmt.Errorf(`%s is not a valid node/group`, x)
		}
		line = append(line, x)
	}
	if len(line) == 0 {
		return nil, fmt.Errorf(`node/group list must not be empty`)
	}
	slices.Sort(line)
	return line, nil
}

/*
ParseGraph expands the graph syntax into a sorted list of unique node pairs:

core = r1, r2, r3 // defines a group

edge = e1, e2

core, core // every node in core is connected to every other node in core

core, edge, r9 // core, edge and r9 are interconnected, but not within core or edge

Groups may reference other groups, but not themselves (directly or not).
*/
func ParseGraph(graph []string, nodes []string) ([]Pair[NodeId, NodeId], error) {
	symbols := slices.Clone(nodes)

	// collect group names first, definitions may reference groups declared later
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		grp, _, isDef := strings.Cut(line, "=")
		if !isDef {
			continue
		}
		if strings.Count(line, "=") != 1 {
			return nil, fmt.Errorf("invalid graph: %s. group definition must contain one '='", line)
		}
		grp = strings.TrimSpace(grp)
		if slices.Contains(nodes, grp) {
			return nil, fmt.Errorf("group name must not be a node name: %s", grp)
		}
		symbols = append(symbols, grp)
	}

	defs := make(map[string][]string)
	cliques := make([][]string, 0)
	for _, line := range graph {
		line = strings.ToLower(strings.TrimSpace(line))
		grp, list, isDef := strings.Cut(line, "=")
		if !isDef {
			list = line
		}
		members, err := parseSymbolList(list, symbols)
		if err != nil {
			return nil, err
		}
		if isDef {
			grp = strings.TrimSpace(grp)
			if _, ok := defs[grp]; ok {
				return nil, fmt.Errorf("duplicate group name: %s", grp)
			}
			defs[grp] = members
			continue
		}
		if len(members) < 2 {
			return nil, fmt.Errorf("invalid pairing, %v", members)
		}
		cliques = append(cliques, members)
	}

	expansion, err := expandGroups(defs, nodes)
	if err != nil {
		return nil, err
	}
	resolve := func(sym string) []string {
		if slices.Contains(nodes, sym) {
			return []string{sym}
		}
		return expansion[sym]
	}

	pairs := make([]Pair[NodeId, NodeId], 0)
	for _, clique := range cliques {
		for i := range clique {
			for j := i + 1; j < len(clique); j++ {
				for _, x := range resolve(clique[i]) {
					for _, y := range resolve(clique[j]) {
						if x != y {
							pairs = append(pairs, MakeSortedPair(NodeId(x), NodeId(y)))
						}
					}
				}
			}
		}
	}
	SortPairs(pairs)
	return slices.Compact(pairs), nil
}

// expandGroups resolves every group to the set of nodes it contains
func expandGroups(defs map[string][]string, nodes []string) (map[string][]string, error) {
	expanded := make(map[string][]string, len(defs))
	for len(expanded) < len(defs) {
		progress := false
		for _, grp := range slices.Sorted(maps.Keys(defs)) {
			if _, ok := expanded[grp]; ok {
				continue
			}
			members, ready := make([]string, 0), true
			for _, sym := range defs[grp] {
				if slices.Contains(nodes, sym) {
					members = append(members, sym)
					continue
				}
				sub, ok := expanded[sym]
				if !ok {
					ready = false
					break
				}
				members = append(members, sub...)
			}
			if !ready {
				continue
			}
			slices.Sort(members)
			expanded[grp] = slices.Compact(members)
			progress = true
		}
		if !progress {
			pending := make([]string, 0)
			for grp := range defs {
				if _, ok := expanded[grp]; !ok {
					pending = append(pending, grp)
				}
			}
			slices.Sort(pending)
			return nil, fmt.Errorf("cycle detected in graph: %v", pending)
		}
	}
	return expanded, nil
}
