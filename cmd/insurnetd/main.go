package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/Ezejesse/InsureNet/x/demo/claims"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("failure when running demo", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "insurnetd",
		Short: "InsureNet pooled-risk insurance ledger tooling",
	}

	rootCmd.AddCommand(newDemoCmd(), newScenariosCmd())
	return rootCmd
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [scenario]",
		Short: "Run the claim resolution walkthroughs against an in-memory ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewNopLogger()
			if cast.ToBool(os.Getenv("INSURENET_DEMO_VERBOSE")) {
				logger = log.NewLogger(os.Stderr)
			}

			runner := claims.NewRunner(logger)
			if len(args) == 1 {
				return runner.RunNamed(args[0])
			}
			return runner.RunAll()
		},
	}
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, scenario := range claims.DemoScenarios() {
				fmt.Printf("%-20s %s\n", scenario.Name, scenario.Description)
			}
			return nil
		},
	}
}
