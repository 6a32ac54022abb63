package core

import (
	"fmt"
	"os"

	"github.com/encodeous/ffscan/state"
	"github.com/goccy/go-yaml"
)

func ReadTopologyConfig(path string) (*state.TopologyCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTopologyConfig(file)
}

func ParseTopologyConfig(data []byte) (*state.TopologyCfg, error) {
	var cfg state.TopologyCfg
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTopology reads, validates and builds the topology stored at path.
func LoadTopology(path string) (*state.TopologyCfg, *state.Topology, error) {
	cfg, err := ReadTopologyConfig(path)
	if err != nil {
		return nil, nil, err
	}
	topo, err := PrepareTopology(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, topo, nil
}

// PrepareTopology validates cfg, normalises its prefixes and builds the
// topology. Validation runs first so malformed prefixes are reported rather
// than dropped while coalescing.
func PrepareTopology(cfg *state.TopologyCfg) (*state.Topology, error) {
	if err := state.TopologyConfigValidator(cfg); err != nil {
		return nil, err
	}
	state.ExpandTopologyConfig(cfg)
	return cfg.BuildTopology()
}

func WriteTopologyConfig(path string, cfg *state.TopologyCfg) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
