package cmd

import (
	"fmt"
	"strconv"

	"github.com/encodeous/ffscan/core"
	"github.com/encodeous/ffscan/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:       "new <ring|line|mesh> <nodes>",
	Short:     "Generates a sample topology config",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"ring", "line", "mesh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid node count: %w", err)
		}
		cfg, err := core.SampleTopology(args[0], n)
		if err != nil {
			return err
		}
		if newOutput != "" {
			if err := state.PathValidator(newOutput); err != nil {
				return err
			}
			return core.WriteTopologyConfig(newOutput, cfg)
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
	GroupID: "init",
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "write the config to this file instead of stdout")
}
