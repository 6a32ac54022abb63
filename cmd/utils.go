package cmd

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/state"
)

func setupDebugging(log *slog.Logger) {
	if debugAddr == "" {
		return
	}
	go func() {
		log.Warn("debug server stopped", "err", http.ListenAndServe(debugAddr, nil))
	}()
}

// setup loads the configured topology and a logger prefixed with its name
func setup() (*state.TopologyCfg, *state.Topology, *slog.Logger, io.Closer, error) {
	cfg, topo, err := core.LoadTopology(state.ConfigPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	prefix := cfg.Name
	if prefix == "" {
		prefix = "ffscan"
	}
	logger, closer, err := core.NewLogger(prefix, level, logPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	setupDebugging(logger)
	return cfg, topo, logger, closer, nil
}
