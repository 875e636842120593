// Package cli implements the taxaclassify command-line driver: a thin
// cobra layer over the pipeline, config, and metrics packages.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	metricsPath string
)

var rootCmd = &cobra.Command{
	Use:   "taxaclassify",
	Short: "taxaclassify - UK legislative text taxonomy classifier",
	Long: `taxaclassify classifies UK legislative text into a structured taxonomy:
which actors bear which kind of obligation (duty, right, responsibility,
power), for what legislative purpose, and under which operational category
of a safety-management framework. It also decides, from document metadata,
whether a law is making new provisions or merely amending/commencing prior
ones.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file overriding the compiled-in defaults")
	rootCmd.PersistentFlags().StringVar(&metricsPath, "metrics-log", "", "Path to the NDJSON metrics log (disabled if empty)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
