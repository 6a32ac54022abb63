package core

import (
	"testing"

	"github.com/encodeous/ffscan/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleTopology(t *testing.T) {
	tests := []struct {
		shape string
		n     int
		links int
	}{
		{"ring", 2, 1},
		{"ring", 3, 3},
		{"ring", 10, 10},
		{"line", 2, 1},
		{"line", 10, 9},
		{"mesh", 2, 1},
		{"mesh", 6, 15},
	}
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			cfg, err := SampleTopology(tt.shape, tt.n)
			require.NoError(t, err)
			require.NoError(t, state.TopologyConfigValidator(cfg))
			topo, err := cfg.BuildTopology()
			require.NoError(t, err)
			assert.Equal(t, tt.n, topo.NodeCount())
			assert.Equal(t, tt.links, topo.LinkCount())
		})
	}
}

func TestSampleTopology_Invalid(t *testing.T) {
	_, err := SampleTopology("ring", 1)
	assert.Error(t, err)
	_, err = SampleTopology("ring", 251)
	assert.Error(t, err)
	_, err = SampleTopology("star", 4)
	assert.ErrorContains(t, err, "unknown topology shape")
}

func TestSampleTopology_Prefixes(t *testing.T) {
	cfg, err := SampleTopology("line", 3)
	require.NoError(t, err)
	topo, err := cfg.BuildTopology()
	require.NoError(t, err)
	node, err := ResolveNode(topo, NewAddressResolver(cfg), "10.0.3.9")
	require.NoError(t, err)
	assert.Equal(t, state.NodeId("n3"), node)
}
