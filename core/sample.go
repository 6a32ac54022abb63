package core

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/encodeous/ffscan/state"
)

// SampleTopology generates a config for a well known shape with n nodes.
// Supported shapes are ring, line and mesh.
func SampleTopology(shape string, n int) (*state.TopologyCfg, error) {
	if n < 2 || n > 250 {
		return nil, fmt.Errorf("node count must be within [2, 250], got %d", n)
	}
	cfg := &state.TopologyCfg{Name: fmt.Sprintf("%s-%d", shape, n)}
	ids := make([]string, 0, n)
	for i := range n {
		id := fmt.Sprintf("n%d", i+1)
		ids = append(ids, id)
		cfg.Nodes = append(cfg.Nodes, state.NodeCfg{
			Id:       state.NodeId(id),
			Prefixes: []netip.Prefix{netip.MustParsePrefix(fmt.Sprintf("10.0.%d.0/24", i+1))},
		})
	}
	switch shape {
	case "ring", "line":
		for i := 0; i+1 < n; i++ {
			cfg.Graph = append(cfg.Graph, fmt.Sprintf("%s, %s", ids[i], ids[i+1]))
		}
		if shape == "ring" && n > 2 {
			cfg.Graph = append(cfg.Graph, fmt.Sprintf("%s, %s", ids[n-1], ids[0]))
		}
	case "mesh":
		cfg.Graph = append(cfg.Graph, "all = "+strings.Join(ids, ", "), "all, all")
	default:
		return nil, fmt.Errorf("unknown topology shape %q", shape)
	}
	return cfg, nil
}

