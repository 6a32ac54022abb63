package state

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

type NodeId string

// Link is an undirected edge, V1 < V2
type Link = Pair[NodeId, NodeId]

var (
	ErrSelfLoop     = errors.New("link endpoints must be distinct")
	ErrUnknownNode  = errors.New("node not defined")
	ErrLinkNotFound = errors.New("link not found")
)

// Topology is an undirected weighted graph. Adjacency and cost entries are
// always kept symmetric: if (a, b) is present so is (b, a), with the same cost.
type Topology struct {
	nodes map[NodeId]struct{}
	links map[Link]struct{}
	// edges preserves neighbour insertion order
	edges map[NodeId][]NodeId
	costs map[Pair[NodeId, NodeId]]uint32
}

func NewTopology() *Topology {
	return &Topology{
		nodes: make(map[NodeId]struct{}),
		links: make(map[Link]struct{}),
		edges: make(map[NodeId][]NodeId),
		costs: make(map[Pair[NodeId, NodeId]]uint32),
	}
}

func (t *Topology) AddNode(id NodeId) {
	t.nodes[id] = struct{}{}
}

func (t *Topology) HasNode(id NodeId) bool {
	_, ok := t.nodes[id]
	return ok
}

// AddLink connects a and b with the given cost. Re-adding an existing pair
// only updates the cost.
func (t *Topology) AddLink(a, b NodeId, cost uint32) error {
	if a == b {
		return fmt.Errorf("%w: %s", ErrSelfLoop, a)
	}
	if !t.HasNode(a) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, a)
	}
	if !t.HasNode(b) {
		return fmt.Errorf("%w: %s", ErrUnknownNode, b)
	}
	t.links[MakeSortedPair(a, b)] = struct{}{}
	if !slices.Contains(t.edges[a], b) {
		t.edges[a] = append(t.edges[a], b)
	}
	if !slices.Contains(t.edges[b], a) {
		t.edges[b] = append(t.edges[b], a)
	}
	t.costs[Pair[NodeId, NodeId]{a, b}] = cost
	t.costs[Pair[NodeId, NodeId]{b, a}] = cost
	return nil
}

// RemoveLink removes the link between a and b in either orientation.
func (t *Topology) RemoveLink(a, b NodeId) error {
	key := MakeSortedPair(a, b)
	if _, ok := t.links[key]; !ok {
		return fmt.Errorf("%w: %s-%s", ErrLinkNotFound, a, b)
	}
	delete(t.links, key)
	t.edges[a] = slices.DeleteFunc(t.edges[a], func(n NodeId) bool { return n == b })
	t.edges[b] = slices.DeleteFunc(t.edges[b], func(n NodeId) bool { return n == a })
	if len(t.edges[a]) == 0 {
		delete(t.edges, a)
	}
	if len(t.edges[b]) == 0 {
		delete(t.edges, b)
	}
	delete(t.costs, Pair[NodeId, NodeId]{a, b})
	delete(t.costs, Pair[NodeId, NodeId]{b, a})
	return nil
}

func (t *Topology) HasLink(a, b NodeId) bool {
	_, ok := t.links[MakeSortedPair(a, b)]
	return ok
}

// Neighbours returns the neighbours of node in the order their links were added.
// The returned slice must not be modified.
func (t *Topology) Neighbours(node NodeId) []NodeId {
	return t.edges[node]
}

func (t *Topology) Cost(a, b NodeId) (uint32, bool) {
	c, ok := t.costs[Pair[NodeId, NodeId]{a, b}]
	return c, ok
}

// Nodes returns every node, sorted
func (t *Topology) Nodes() []NodeId {
	return slices.Sorted(maps.Keys(t.nodes))
}

// Links returns every link, sorted
func (t *Topology) Links() []Link {
	links := slices.Collect(maps.Keys(t.links))
	SortPairs(links)
	return links
}

func (t *Topology) NodeCount() int {
	return len(t.nodes)
}

func (t *Topology) LinkCount() int {
	return len(t.links)
}

// Clone returns a deep copy of the topology
func (t *Topology) Clone() *Topology {
	edges := make(map[NodeId][]NodeId, len(t.edges))
	for n, neighs := range t.edges {
		edges[n] = slices.Clone(neighs)
	}
	return &Topology{
		nodes: maps.Clone(t.nodes),
		links: maps.Clone(t.links),
		edges: edges,
		costs: maps.Clone(t.costs),
	}
}
