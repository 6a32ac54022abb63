package cmd

import (
	"fmt"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/perf"
	"github.com/spf13/cobra"
)

var scanOpts = core.DefaultScanOptions()

var (
	scanNoExpected bool
	scanOutput     string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Simulate every single link and node failure",
	Long: `Builds the fast-failover routing table of the topology, then for every single link and node failure forwards between every pair of nodes and reports how many paths were delivered, dropped or looped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scanOutput != "text" && scanOutput != "yaml" {
			return fmt.Errorf("unknown output format %q", scanOutput)
		}
		_, topo, log, closer, err := setup()
		if err != nil {
			return err
		}
		defer closer.Close()

		opts := scanOpts
		opts.ExpectedDrops = !scanNoExpected
		opts.Observer = core.SlogObserver{Logger: log}

		log.Info("scanning topology", "nodes", topo.NodeCount(), "links", topo.LinkCount(), "workers", opts.Workers)
		report, _, err := core.Analyze(cmd.Context(), topo, opts)
		if err != nil {
			return err
		}
		if !report.Complete() {
			log.Warn("scan is incomplete", "scenarios", report.ScenarioCount(), "expected", report.LinkCount+report.NodeCount)
		}
		log.Debug("perf", "spf", perf.SpfComputations.String(), "scenario_latency", perf.ScenarioLatency.String())

		if scanOutput == "yaml" {
			out, err := core.MarshalReport(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		return core.RenderReport(cmd.OutOrStdout(), report, opts.RecordPaths)
	},
	GroupID: "ff",
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVarP(&scanOpts.Workers, "workers", "w", scanOpts.Workers, "number of failure scenarios evaluated concurrently")
	scanCmd.Flags().BoolVarP(&scanOpts.RecordPaths, "paths", "p", false, "list the path taken by every pair in every scenario")
	scanCmd.Flags().BoolVar(&scanNoExpected, "no-expected-drop", false, "count drops to or from a failed node like any other drop")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "text", "output format, text or yaml")
}
