package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/encodeous/ffscan/state"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ffscan",
	Short: "Fast-failover resilience analyzer",
	Long: `ffscan evaluates how a network programmed with fast-failover routes (a primary and a backup next hop per destination) behaves under every possible single link or node failure.
Each failure is classified per source/destination pair as delivered, dropped or looping.`,
	SilenceUsage: true,
}

var (
	verbose   bool
	logPath   string
	debugAddr string
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "init",
		Title: "Create Topologies",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "ff",
		Title: "Analysis Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&state.ConfigPath, "config", "c", state.ConfigPath, "topology config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-path", "", "also write logs to this file")
	rootCmd.PersistentFlags().StringVar(&debugAddr, "debug-addr", "", "serve expvar and metrics on this address while running")
}
