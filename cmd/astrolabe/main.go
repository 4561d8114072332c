package main

import (
	"os"

	"github.com/spf13/cobra"

	"astrolabe/internal/config"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "astrolabe",
		Short: "Chart computation and profile store for astrological analysis",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the project config")
	root.AddCommand(initCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(chartCmd())
	root.AddCommand(transitsCmd())
	root.AddCommand(progressCmd())
	root.AddCommand(synastryCmd())
	root.AddCommand(cycleCmd())
	root.AddCommand(skyCmd())
	root.AddCommand(profilesCmd())
	root.AddCommand(snapshotsCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
