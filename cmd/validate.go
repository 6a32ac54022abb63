package cmd

import (
	"fmt"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/state"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks that the topology config is well formed",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, topo, err := core.LoadTopology(state.ConfigPath)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d nodes, %d links\n", state.ConfigPath, topo.NodeCount(), topo.LinkCount())
		return err
	},
	GroupID: "init",
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
