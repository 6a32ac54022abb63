package test

import (
	"reflect"
	"testing"

	"github.com/encodeous/ffscan/state"
)

func TestParseGraph_GroupOnly(t *testing.T) {
	// a group definition alone does not connect anything
	graph := []string{"g = a, b"}
	nodes := []string{"a", "b"}

	pairs, err := state.ParseGraph(graph, nodes)
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	expected := []state.Pair[state.NodeId, state.NodeId]{}
	if !reflect.DeepEqual(pairs, expected) {
		t.Errorf("Expected %v, got %v", expected, pairs)
	}
}

func TestParseGraph_UnknownSymbol(t *testing.T) {
	graph := []string{"a, z"}
	nodes := []string{"a", "b"}

	_, err := state.ParseGraph(graph, nodes)
	if err == nil {
		t.Errorf("Expected error for unknown symbol, got nil")
	}
}

func TestBuildTopology_GraphOnly(t *testing.T) {
	cfg := state.TopologyCfg{
		Nodes: []state.NodeCfg{{Id: "a"}, {Id: "b"}, {Id: "c"}},
		Graph: []string{"edge = b, c", "a, edge"},
	}
	if err := state.TopologyConfigValidator(&cfg); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	topo, err := cfg.BuildTopology()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []state.Link{{V1: "a", V2: "b"}, {V1: "a", V2: "c"}}
	if !reflect.DeepEqual(topo.Links(), expected) {
		t.Errorf("Expected %v, got %v", expected, topo.Links())
	}
	if cost, _ := topo.Cost("c", "a"); cost != state.DefaultCost {
		t.Errorf("Expected graph links to have cost %d, got %d", state.DefaultCost, cost)
	}
}

func TestTopologyConfigValidator_DuplicateNode(t *testing.T) {
	cfg := state.TopologyCfg{
		Nodes: []state.NodeCfg{{Id: "a"}, {Id: "a"}},
	}
	if err := state.TopologyConfigValidator(&cfg); err == nil {
		t.Errorf("Expected error for duplicate node, got nil")
	}
}
