// cmd/tools/assistant-cli/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	fixture string
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "assistant-cli",
		Short: "Shop assistant developer tool",
		Long: `assistant-cli runs the chat resolution pipeline against a product fixture,
inspects the activity registry, imports fixtures into a configured catalog
backend and talks to a running assistant server.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.fixture, "fixture", "f", "configs/products.yaml", "product fixture (JSON or YAML)")
	root.PersistentFlags().StringVarP(&opts.config, "config", "c", "", "config file path (defaults to the configs/ search path)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline decisions")

	root.AddCommand(
		newResolveCmd(opts),
		newClassifyCmd(opts),
		newVocabCmd(opts),
		newRegistryCmd(),
		newImportCmd(opts),
		newAskCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
