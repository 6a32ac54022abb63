package state

import (
	"fmt"
	"time"
)

type Outcome uint8

const (
	Delivered Outcome = iota
	Dropped
	Looping
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "ok"
	case Dropped:
		return "drop"
	case Looping:
		return "loop"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

type ScenarioKind uint8

const (
	LinkFailure ScenarioKind = iota
	NodeFailure
)

// Scenario is a single link or node failure
type Scenario struct {
	Kind ScenarioKind
	Link Link
	Node NodeId
}

func LinkScenario(a, b NodeId) Scenario {
	return Scenario{Kind: LinkFailure, Link: MakeSortedPair(a, b)}
}

func NodeScenario(n NodeId) Scenario {
	return Scenario{Kind: NodeFailure, Node: n}
}

// Apply removes every route invalidated by the failure from table.
func (s Scenario) Apply(table *RoutingTable) {
	switch s.Kind {
	case LinkFailure:
		table.RemoveLinkRoute(s.Link.V1, s.Link.V2)
	case NodeFailure:
		table.RemoveNodeRoute(s.Node)
	}
}

// IsEndpoint reports whether the failed node is src or dst.
func (s Scenario) IsEndpoint(src, dst NodeId) bool {
	return s.Kind == NodeFailure && (s.Node == src || s.Node == dst)
}

func (s Scenario) String() string {
	if s.Kind == NodeFailure {
		return "node " + string(s.Node)
	}
	return fmt.Sprintf("link %s-%s", s.Link.V1, s.Link.V2)
}

type Tally struct {
	Delivered    int
	Dropped      int
	ExpectedDrop int
	Looping      int
}

// Record counts outcome. Drops are counted as expected when expected is set.
func (t *Tally) Record(outcome Outcome, expected bool) {
	switch outcome {
	case Delivered:
		t.Delivered++
	case Dropped:
		if expected {
			t.ExpectedDrop++
		} else {
			t.Dropped++
		}
	case Looping:
		t.Looping++
	}
}

func (t *Tally) Add(o Tally) {
	t.Delivered += o.Delivered
	t.Dropped += o.Dropped
	t.ExpectedDrop += o.ExpectedDrop
	t.Looping += o.Looping
}

func (t Tally) Total() int {
	return t.Delivered + t.Dropped + t.ExpectedDrop + t.Looping
}

type PathResult struct {
	Src     NodeId
	Dst     NodeId
	Outcome Outcome
	Path    []NodeId
}

func (p PathResult) String() string {
	return fmt.Sprintf("%s->%s:%v status:%s", p.Src, p.Dst, p.Path, p.Outcome)
}

type ScenarioResult struct {
	Scenario Scenario
	Tally    Tally
	// Paths is only populated when path recording is enabled
	Paths []PathResult
}

type Report struct {
	NodeCount    int
	LinkCount    int
	Computations int
	BuildTime    time.Duration
	ScanTime     time.Duration
	Scenarios    []ScenarioResult
	Total        Tally
}

func (r *Report) ScenarioCount() int {
	return len(r.Scenarios)
}

// Complete reports whether every single link and node failure was evaluated.
func (r *Report) Complete() bool {
	return r.ScenarioCount() == r.LinkCount+r.NodeCount
}

// Ratio returns n as a fraction of every tested path
func (r *Report) Ratio(n int) float64 {
	total := r.Total.Total()
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
