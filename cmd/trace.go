package cmd

import (
	"fmt"
	"strings"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/state"
	"github.com/spf13/cobra"
)

var (
	traceFailLink string
	traceFailNode string
)

var traceCmd = &cobra.Command{
	Use:   "trace <src> <dst>",
	Short: "Forwards a single packet, optionally under a failure",
	Long:  `Walks a packet from src to dst over the fast-failover routing table. dst may also be an address, which resolves to the node advertising the longest matching prefix.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, topo, log, closer, err := setup()
		if err != nil {
			return err
		}
		defer closer.Close()

		resolver := core.NewAddressResolver(cfg)
		src, err := core.ResolveNode(topo, resolver, args[0])
		if err != nil {
			return err
		}
		dst, err := core.ResolveNode(topo, resolver, args[1])
		if err != nil {
			return err
		}
		sc, failed, err := parseFailure(topo)
		if err != nil {
			return err
		}

		table, _, err := core.BuildRoutingTable(topo, core.SlogObserver{Logger: log})
		if err != nil {
			return err
		}
		if failed {
			table = table.Clone()
			sc.Apply(table)
			log.Debug("applied failure", "scenario", sc)
		}
		outcome, path := core.Forward(table, src, dst)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), state.PathResult{Src: src, Dst: dst, Outcome: outcome, Path: path})
		return err
	},
	GroupID: "ff",
}

func parseFailure(topo *state.Topology) (state.Scenario, bool, error) {
	switch {
	case traceFailLink != "" && traceFailNode != "":
		return state.Scenario{}, false, fmt.Errorf("--fail-link and --fail-node are mutually exclusive")
	case traceFailLink != "":
		a, b, ok := strings.Cut(traceFailLink, ",")
		if !ok {
			return state.Scenario{}, false, fmt.Errorf("--fail-link expects <a>,<b>, got %q", traceFailLink)
		}
		a, b = strings.TrimSpace(a), strings.TrimSpace(b)
		if !topo.HasLink(state.NodeId(a), state.NodeId(b)) {
			return state.Scenario{}, false, fmt.Errorf("%w: %s-%s", state.ErrLinkNotFound, a, b)
		}
		return state.LinkScenario(state.NodeId(a), state.NodeId(b)), true, nil
	case traceFailNode != "":
		if !topo.HasNode(state.NodeId(traceFailNode)) {
			return state.Scenario{}, false, fmt.Errorf("%w: %s", state.ErrUnknownNode, traceFailNode)
		}
		return state.NodeScenario(state.NodeId(traceFailNode)), true, nil
	}
	return state.Scenario{}, false, nil
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringVar(&traceFailLink, "fail-link", "", "fail the link between two nodes, e.g. a,b")
	traceCmd.Flags().StringVar(&traceFailNode, "fail-node", "", "fail a node")
}
