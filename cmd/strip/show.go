package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/strip/internal/app"
)

func newLatestCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the latest comic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, flags, app.Target{Kind: app.TargetLatest})
		},
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <number>",
		Short: "Print the comic with the given number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseComicNumber(args[0])
			if err != nil {
				return err
			}
			return show(cmd, flags, app.Target{Kind: app.TargetID, ID: id})
		},
	}
}

func newRandomCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random comic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return show(cmd, flags, app.Target{Kind: app.TargetRandom})
		},
	}
}

func show(cmd *cobra.Command, flags *rootFlags, target app.Target) error {
	opts := flags.options()
	opts.Console = cmd.ErrOrStderr()
	return app.Show(cmd.Context(), opts, cmd.OutOrStdout(), target)
}

func parseComicNumber(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid comic number %q: want a positive integer", arg)
	}
	return id, nil
}
