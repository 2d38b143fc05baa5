package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/storage-mogul/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config <settings|catalog>",
	Short: "Print an embedded default config",
	Long: `Print the built-in settings or catalog YAML. Redirect it to a file
under ~/.mogul/configs/ or ./configs/ and edit it to customize the game.

Examples:
  mogul config settings > ~/.mogul/configs/settings.yaml
  mogul config catalog > ./configs/catalog.yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"settings", "catalog"},
	Run:       runConfig,
}

func runConfig(_ *cobra.Command, args []string) {
	data := config.GetDefaultYAML(args[0])
	if data == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown config %q (want settings or catalog)\n", args[0])
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
