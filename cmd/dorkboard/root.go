package main

import (
	"os"

	"github.com/spf13/cobra"
)

// defaultConfigPath is used when neither --config nor DORKBOARD_CONFIG is set.
// A missing file is fine: defaults and env overrides apply.
const defaultConfigPath = "dorkboard.yaml"

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "dorkboard",
		Short: "Google dork visualizer",
		Long: `dorkboard turns a catalog of Google search dork templates into
clickable search links for a target domain.

Links are only built, never followed: dorkboard makes no requests to the
search engine itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"config file (default $DORKBOARD_CONFIG or ./"+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override logger.level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "override logger.format (text, json)")

	root.AddCommand(
		newServeCmd(flags),
		newTUICmd(flags),
		newRenderCmd(flags),
		newCatalogCmd(flags),
		newMCPCmd(flags),
		newDoctorCmd(flags),
		newVersionCmd(),
	)
	return root
}

// resolveConfigPath picks the config file: flag, then env, then the default.
func (f *rootFlags) resolveConfigPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	if p := os.Getenv("DORKBOARD_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}
