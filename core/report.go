package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/encodeous/ffscan/state"
	"github.com/goccy/go-yaml"
)

// RenderReport writes the human readable summary of a scan. When paths is
// set, every recorded path is listed under its scenario.
func RenderReport(w io.Writer, r *state.Report, paths bool) error {
	sb := strings.Builder{}
	if paths {
		for _, sc := range r.Scenarios {
			sb.WriteString("** fail " + sc.Scenario.String() + "\n")
			for _, p := range sc.Paths {
				sb.WriteString(p.String() + "\n")
			}
		}
		sb.WriteString("\n")
	}

	pct := func(n int) string {
		return fmt.Sprintf("%.1f%%", r.Ratio(n)*100)
	}
	t := r.Total
	fmt.Fprintf(&sb, "** Test Results:\n")
	fmt.Fprintf(&sb, "number of nodes: %d\n", r.NodeCount)
	fmt.Fprintf(&sb, "number of links: %d\n", r.LinkCount)
	fmt.Fprintf(&sb, "failure scenarios: %d\n\n", r.ScenarioCount())
	fmt.Fprintf(&sb, "path compute cycles: %d\n", r.Computations)
	fmt.Fprintf(&sb, "path compute time: %s\n", r.BuildTime)
	fmt.Fprintf(&sb, "scan time: %s\n\n", r.ScanTime)
	fmt.Fprintf(&sb, "path tested: %d\n", t.Total())
	fmt.Fprintf(&sb, "path expected drop: %d\n", t.ExpectedDrop)
	fmt.Fprintf(&sb, "path drop: %d\n", t.Dropped)
	fmt.Fprintf(&sb, "path loop: %d\n", t.Looping)
	fmt.Fprintf(&sb, "path ok: %d\n\n", t.Delivered)
	fmt.Fprintf(&sb, "expected drop: %s\n", pct(t.ExpectedDrop))
	fmt.Fprintf(&sb, "drop: %s\n", pct(t.Dropped))
	fmt.Fprintf(&sb, "loop: %s\n", pct(t.Looping))
	fmt.Fprintf(&sb, "ok: %s\n", pct(t.Delivered))

	_, err := io.WriteString(w, sb.String())
	return err
}

type TallySummary struct {
	Delivered    int `yaml:"delivered"`
	Dropped      int `yaml:"dropped"`
	ExpectedDrop int `yaml:"expected_drop"`
	Looping      int `yaml:"looping"`
}

type ScenarioSummary struct {
	Failure string       `yaml:"failure"`
	Tally   TallySummary `yaml:"tally"`
	Paths   []string     `yaml:"paths,omitempty"`
}

// ReportSummary is the machine readable form of a report
type ReportSummary struct {
	Nodes        int               `yaml:"nodes"`
	Links        int               `yaml:"links"`
	Computations int               `yaml:"computations"`
	BuildTime    string            `yaml:"build_time"`
	ScanTime     string            `yaml:"scan_time"`
	Tested       int               `yaml:"tested"`
	Total        TallySummary      `yaml:"total"`
	Scenarios    []ScenarioSummary `yaml:"scenarios"`
}

func summarizeTally(t state.Tally) TallySummary {
	return TallySummary{
		Delivered:    t.Delivered,
		Dropped:      t.Dropped,
		ExpectedDrop: t.ExpectedDrop,
		Looping:      t.Looping,
	}
}

func Summarize(r *state.Report) ReportSummary {
	s := ReportSummary{
		Nodes:        r.NodeCount,
		Links:        r.LinkCount,
		Computations: r.Computations,
		BuildTime:    r.BuildTime.String(),
		ScanTime:     r.ScanTime.String(),
		Tested:       r.Total.Total(),
		Total:        summarizeTally(r.Total),
		Scenarios:    make([]ScenarioSummary, 0, len(r.Scenarios)),
	}
	for _, sc := range r.Scenarios {
		ss := ScenarioSummary{
			Failure: sc.Scenario.String(),
			Tally:   summarizeTally(sc.Tally),
		}
		for _, p := range sc.Paths {
			ss.Paths = append(ss.Paths, p.String())
		}
		s.Scenarios = append(s.Scenarios, ss)
	}
	return s
}

func MarshalReport(r *state.Report) ([]byte, error) {
	return yaml.Marshal(Summarize(r))
}
