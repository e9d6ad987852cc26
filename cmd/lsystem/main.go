// Command lsystem derives L-systems written in the L-system language.
package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitGeneric)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lsystem",
		Short:        "Derive L-systems",
		Long:         "lsystem reads L-system programs, derives them and reports the generations they grow.",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	root.PersistentFlags().Bool("quiet", false, "Only log errors")

	root.AddCommand(newDeriveCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newInterpretCmd())
	root.AddCommand(newStreamCmd())
	return root
}

// logger writes to the command's stderr at the level picked by --verbose and
// --quiet.
func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
