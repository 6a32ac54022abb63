package core

import (
	"testing"

	"github.com/encodeous/ffscan/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nh = []state.NodeId

func assertSameGraph(t *testing.T, expected, actual *state.Topology) {
	t.Helper()
	assert.Equal(t, expected.Nodes(), actual.Nodes())
	assert.Equal(t, expected.Links(), actual.Links())
	for _, l := range expected.Links() {
		ec, _ := expected.Cost(l.V1, l.V2)
		ac, ok := actual.Cost(l.V2, l.V1)
		assert.True(t, ok)
		assert.Equal(t, ec, ac, "cost of %s-%s", l.V1, l.V2)
	}
	for _, n := range expected.Nodes() {
		assert.ElementsMatch(t, expected.Neighbours(n), actual.Neighbours(n))
	}
}

func TestBuildRoutingTable_Ring(t *testing.T) {
	topo := RingTopology(t)
	rt, stats, err := BuildRoutingTable(topo, nil)
	require.NoError(t, err)

	expected := routes(map[state.NodeId]map[state.NodeId][]state.NodeId{
		"a": {"b": nh{"b", "d"}, "c": nh{"b", "d"}, "d": nh{"d", "b"}},
		"b": {"a": nh{"a", "c"}, "c": nh{"c", "a"}, "d": nh{"a", "c"}},
		"c": {"a": nh{"b", "d"}, "b": nh{"b", "d"}, "d": nh{"d", "b"}},
		"d": {"a": nh{"a", "c"}, "b": nh{"a", "c"}, "c": nh{"c", "a"}},
	})
	if diff := cmp.Diff(expected, rt); diff != "" {
		t.Fatalf("unexpected routing table (-want +got):\n%s", diff)
	}
	assert.Equal(t, 16, stats.Computations)
}

func TestBuildRoutingTable_LoopTopology(t *testing.T) {
	rt, stats, err := BuildRoutingTable(LoopTopology(t), nil)
	require.NoError(t, err)

	expected := routes(map[state.NodeId]map[state.NodeId][]state.NodeId{
		"a": {"b": nh{"b", "c"}, "c": nh{"c", "b"}, "d": nh{"b", "c"}},
		"b": {"a": nh{"a", "c"}, "c": nh{"c", "a"}, "d": nh{"d", "a"}},
		"c": {"a": nh{"a", "b"}, "b": nh{"b", "a"}, "d": nh{"b", "a"}},
		"d": {"a": nh{"b", "a"}, "b": nh{"b", "a"}, "c": nh{"b", "a"}},
	})
	if diff := cmp.Diff(expected, rt); diff != "" {
		t.Fatalf("unexpected routing table (-want +got):\n%s", diff)
	}
	assert.Equal(t, 16, stats.Computations)
}

func TestBuildRoutingTable_Line(t *testing.T) {
	rt, stats, err := BuildRoutingTable(MakeTopology(t, "a-b", "b-c"), nil)
	require.NoError(t, err)

	expected := routes(map[state.NodeId]map[state.NodeId][]state.NodeId{
		"a": {"b": nh{"b"}, "c": nh{"b"}},
		"b": {"a": nh{"a"}, "c": nh{"c"}},
		"c": {"a": nh{"b"}, "b": nh{"b"}},
	})
	if diff := cmp.Diff(expected, rt); diff != "" {
		t.Fatalf("unexpected routing table (-want +got):\n%s", diff)
	}
	assert.Equal(t, 9, stats.Computations)
}

func TestBuildRoutingTable_NoSecondary(t *testing.T) {
	h := &AnalysisHarness{}
	rt, stats, err := BuildRoutingTable(MakeTopology(t, "a-b"), h)
	require.NoError(t, err)

	assert.Equal(t, []state.NodeId{"b"}, rt.NextHops("a", "b"))
	assert.Equal(t, []state.NodeId{"a"}, rt.NextHops("b", "a"))
	assert.Equal(t, 4, stats.Computations)

	ev := h.GetEvents(NoSecondary)
	assert.Len(t, ev, 2)
	ev.AssertContains(t, "node", state.NodeId("a"), "dst", state.NodeId("b"))
	ev.AssertContains(t, "node", state.NodeId("b"), "dst", state.NodeId("a"))
	assert.Len(t, h.GetEvents(PrimarySelected), 2)
	assert.Empty(t, h.GetEvents(SecondarySelected))
}

func TestBuildRoutingTable_RestoresTopology(t *testing.T) {
	topo := MakeTopology(t, "b-d", "a-c", "b-c", "a-b:2", "a-d:4", "d-e:7")
	before := topo.Clone()
	_, _, err := BuildRoutingTable(topo, nil)
	require.NoError(t, err)
	assertSameGraph(t, before, topo)

	// the links must come back with their own cost, not a unit cost
	c, ok := topo.Cost("d", "e")
	assert.True(t, ok)
	assert.Equal(t, uint32(7), c)
}

func TestBuildRoutingTable_Invariants(t *testing.T) {
	_, topo, err := LoadTopology("testdata/metro.yaml")
	require.NoError(t, err)
	rt, stats, err := BuildRoutingTable(topo, nil)
	require.NoError(t, err)

	n := topo.NodeCount()
	assert.Equal(t, n*n, stats.Computations)
	for _, node := range topo.Nodes() {
		_, ok := rt.Routes[node][node]
		assert.False(t, ok, "%s has a route to itself", node)
		for _, dst := range rt.Destinations(node) {
			hops := rt.NextHops(node, dst)
			require.NotEmpty(t, hops)
			assert.LessOrEqual(t, len(hops), state.MaxNextHops)
			for _, h := range hops {
				assert.True(t, topo.HasLink(node, h), "%s is not a neighbour of %s", h, node)
			}
			if len(hops) == 2 {
				assert.NotEqual(t, hops[0], hops[1])
			}
		}
	}
}

func TestBuildRoutingTable_MaxCostLinks(t *testing.T) {
	rt, _, err := BuildRoutingTable(MakeTopology(t, "a-b:4294967295", "b-c:4294967295", "a-c:10"), nil)
	require.NoError(t, err)
	assert.Equal(t, []state.NodeId{"a", "c"}, rt.NextHops("b", "a"))
	assert.Equal(t, []state.NodeId{"c", "a"}, rt.NextHops("b", "c"))
}

func TestBuildRoutingTable_Deterministic(t *testing.T) {
	a, _, err := BuildRoutingTable(LoopTopology(t), nil)
	require.NoError(t, err)
	b, _, err := BuildRoutingTable(LoopTopology(t), nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}
