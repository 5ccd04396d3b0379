package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/strip/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootFlags struct {
	configPath string
	prefsPath  string
	logLevel   string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		LogLevel:   f.logLevel,
		Version:    version,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "strip",
		Short: "Browse web comics from the terminal.",
		Long: `Browse web comics from the terminal.

Without a subcommand strip opens the interactive browser on the latest comic.
Use the arrow keys (or h/l) to move, r for a random comic, : to jump to a
number and ? for all keys.

Configuration is read from ~/.config/strip/config.toml unless --config is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default ~/.config/strip/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/strip/prefs.toml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(newLatestCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newRandomCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}
