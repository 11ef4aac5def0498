package main

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/born-ml/ttcore/tt"
)

// app carries state shared by the subcommands.
type app struct {
	verbose bool
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "ttcore",
		Short:         "Tensor Train and Tucker decompositions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every truncation step")

	root.AddCommand(
		newVersionCmd(),
		a.newRandomCmd(),
		a.newInfoCmd(),
		a.newRoundCmd(),
		a.newOrthogonalizeCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ttcore %s\n", version)
		},
	}
}

// printSummary writes the tensor description and, when present, its
// metadata in key order.
func printSummary(cmd *cobra.Command, t *tt.Tensor, meta map[string]string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.String())
	fmt.Fprintf(out, "  norm:         %.6g\n", tt.Norm(t))
	if len(meta) == 0 {
		return
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fmt.Fprintln(out, "metadata:")
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, meta[k])
	}
}

// Lineage metadata keys written by the commands that produce files.
const (
	metaID     = "id"
	metaParent = "parent"
)

// derive returns the metadata for a file produced from one with meta: a
// fresh id, the source id as parent, everything else carried over.
func derive(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta)+2)
	for k, v := range meta {
		out[k] = v
	}
	delete(out, metaParent)
	if id, ok := meta[metaID]; ok {
		out[metaParent] = id
	}
	out[metaID] = uuid.NewString()
	return out
}
