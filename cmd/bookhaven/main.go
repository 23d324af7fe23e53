package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "bookhaven",
	Short: "BookHaven - a terminal storefront for book lovers",
	Long: `BookHaven is a terminal storefront with a small curated catalog,
a persistent cart, and a mock checkout flow. Browse with the arrow
keys, filter by category, and place orders without leaving the shell.

State (theme, identity, cart) is kept in a local SQLite file and
survives restarts.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
