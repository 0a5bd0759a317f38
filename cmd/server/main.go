package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "resaleops",
		Short:         "Listing and delisting job lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional config file (yaml, json or toml)")

	serve := newServeCommand(&configFile)
	root.AddCommand(serve, newMigrateCommand(&configFile))
	// Bare invocation serves, as the old single-purpose binary did.
	root.RunE = serve.RunE
	return root
}
