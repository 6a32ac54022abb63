package cmd

import (
	"fmt"
	"io"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/state"
	"github.com/spf13/cobra"
)

var tableNode string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Prints the baseline fast-failover routing table",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, topo, log, closer, err := setup()
		if err != nil {
			return err
		}
		defer closer.Close()

		table, stats, err := core.BuildRoutingTable(topo, core.SlogObserver{Logger: log})
		if err != nil {
			return err
		}
		log.Debug("built routing table", "computations", stats.Computations, "elapsed", stats.Elapsed)

		if tableNode != "" {
			if !topo.HasNode(state.NodeId(tableNode)) {
				return fmt.Errorf("%w: %s", state.ErrUnknownNode, tableNode)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), table.StringNode(state.NodeId(tableNode)))
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), table.String())
		return err
	},
	GroupID: "ff",
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVarP(&tableNode, "node", "n", "", "only print the routes of this node")
}
