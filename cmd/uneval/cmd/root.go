// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	input   string
	logger  = slog.Default()

	Root = &cobra.Command{
		Use:               "uneval",
		Short:             "uneval writes data values as Go source",
		SilenceUsage:      true,
		PersistentPreRunE: rootPreE,
	}
)

func init() {
	Root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
	Root.AddCommand(genCmd, dumpCmd)
}

func rootPreE(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With("scope", cmd.Name())
	return nil
}
