package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/interchange"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/interchange/lsif"
)

func newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive <file>",
		Short: "Derive an L-system and print the generation it reaches",
		Args:  cobra.ExactArgs(1),
		RunE:  runDerive,
	}
	cmd.Flags().IntP("steps", "n", 1, "Number of derivation steps")
	cmd.Flags().Int64("seed", 0, "Seed of the random source (default: the program's)")
	cmd.Flags().String("format", "text", "Output format: text | yaml | dsl")
	return cmd
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a program in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE:  runFmt,
	}
}

func newInterpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret <file>",
		Short: "Derive an L-system and count what the generation holds",
		Args:  cobra.ExactArgs(1),
		RunE:  runInterpret,
	}
	cmd.Flags().IntP("steps", "n", 1, "Number of derivation steps")
	cmd.Flags().Int64("seed", 0, "Seed of the random source (default: the program's)")
	return cmd
}

// load reads the program at path, honoring --seed when the command has it.
func load(cmd *cobra.Command, path string) (*lsystem.LSystem, error) {
	parameters, err := interchange.File(path).Import()
	if err != nil {
		return nil, classify(err, "loading %s", path)
	}
	opts := []lsystem.Option{lsystem.WithLogger(logger(cmd))}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, _ := cmd.Flags().GetInt64("seed")
		opts = append(opts, lsystem.WithSeed(seed))
	}
	return lsystem.New(parameters, opts...), nil
}

// loadAndDerive loads the program at path and derives it --steps times.
func loadAndDerive(cmd *cobra.Command, path string) (*lsystem.LSystem, string, error) {
	steps, _ := cmd.Flags().GetInt("steps")
	if steps < 0 {
		return nil, "", exitError(exitGeneric, "--steps must not be negative, got %d", steps)
	}
	ls, err := load(cmd, path)
	if err != nil {
		return nil, "", err
	}

	runID := uuid.NewString()
	log := logger(cmd).With("run_id", runID, "file", path)
	if err := derive(cmd.Context(), ls, steps, runID); err != nil {
		log.Error("derivation failed", "error", err)
		return nil, "", classify(err, "deriving %s", path)
	}
	log.Info("derived", "lsystem", ls.Parameters.Name, "steps", steps, "modules", ls.Current().Count())
	return ls, runID, nil
}

func runDerive(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "yaml", "dsl":
	default:
		return exitError(exitGeneric, "unknown format %q (want text, yaml or dsl)", format)
	}

	ls, runID, err := loadAndDerive(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		result := lsif.NewResult(ls)
		result.ID = runID
		enc := lsif.NewEncoder(out)
		if err := enc.Encode(result); err != nil {
			return exitError(exitGeneric, "writing result: %v", err)
		}
		return enc.Close()
	case "dsl":
		// The program again, growing on from the derived generation.
		parameters := ls.Parameters
		parameters.Axiom = ls.Current()
		_, err = fmt.Fprint(out, parameters.String())
	default:
		_, err = fmt.Fprintln(out, ls.Current())
	}
	return err
}

func runFmt(cmd *cobra.Command, args []string) error {
	ls, err := load(cmd, args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), ls.String())
	return err
}

func runInterpret(cmd *cobra.Command, args []string) error {
	ls, _, err := loadAndDerive(cmd, args[0])
	if err != nil {
		return err
	}

	var stats lsystem.Stats
	ls.Interpret(&stats)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %d\n", "steps", ls.Steps())
	fmt.Fprintf(out, "%-10s %d\n", "modules", stats.Modules)
	fmt.Fprintf(out, "%-10s %d\n", "branches", stats.Branches)
	fmt.Fprintf(out, "%-10s %d\n", "depth", stats.MaxDepth)
	for _, name := range stats.Names() {
		fmt.Fprintf(out, "  %-8s %d\n", name, stats.Counts[name])
	}
	return nil
}
