package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/encodeous/ffscan/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type HarnessEvent struct {
	Event   AnalysisEvent
	Message string
	Args    []any
}

// AnalysisHarness records every event it observes
type AnalysisHarness struct {
	mu     sync.Mutex
	events []HarnessEvent
}

func (h *AnalysisHarness) Log(event AnalysisEvent, desc string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, HarnessEvent{Event: event, Message: desc, Args: args})
}

type HarnessEvents []HarnessEvent

func (h *AnalysisHarness) GetEvents(kind AnalysisEvent) HarnessEvents {
	h.mu.Lock()
	defer h.mu.Unlock()
	x := make([]HarnessEvent, 0)
	for _, e := range h.events {
		if e.Event == kind {
			x = append(x, e)
		}
	}
	return x
}

func (e HarnessEvents) String() string {
	out := make([]string, 0)
	for _, ev := range e {
		cur := ev.Event.String()
		for _, arg := range ev.Args {
			cur += " " + fmt.Sprint(arg)
		}
		out = append(out, cur)
	}
	slices.Sort(out)
	return strings.Join(out, "\n")
}

func (e HarnessEvents) contains(args ...any) bool {
	for _, ev := range e {
		if len(ev.Args) < len(args) {
			continue
		}
		match := true
		for i, arg := range args {
			if !cmp.Equal(ev.Args[i], arg) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, args ...any) {
	t.Helper()
	if !e.contains(args...) {
		t.Fatal("Expected event not found with args: ", args, " in ", e)
	}
}

// MakeTopology builds a topology from links written as "a-b" (unit cost) or "a-b:cost"
func MakeTopology(t *testing.T, links ...string) *state.Topology {
	t.Helper()
	topo := state.NewTopology()
	for _, l := range links {
		ends, costStr, hasCost := strings.Cut(l, ":")
		a, b, ok := strings.Cut(ends, "-")
		require.True(t, ok, "bad link %q", l)
		cost := uint32(1)
		if hasCost {
			_, err := fmt.Sscan(costStr, &cost)
			require.NoError(t, err)
		}
		topo.AddNode(state.NodeId(a))
		topo.AddNode(state.NodeId(b))
		require.NoError(t, topo.AddLink(state.NodeId(a), state.NodeId(b), cost))
	}
	return topo
}

func RingTopology(t *testing.T) *state.Topology {
	return MakeTopology(t, "a-b", "b-c", "c-d", "d-a")
}

// LoopTopology has forwarding loops when the link b-d or the node d fails
func LoopTopology(t *testing.T) *state.Topology {
	return MakeTopology(t, "b-d", "a-c", "b-c", "a-b:2", "a-d:4")
}

func routes(rows map[state.NodeId]map[state.NodeId][]state.NodeId) *state.RoutingTable {
	return &state.RoutingTable{Routes: rows}
}
