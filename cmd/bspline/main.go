// Command bspline fits B-spline curves to point sequences and samples them.
//
// Usage:
//
//	bspline fit [flags] [points]
//	bspline eval [flags] [definition.yaml]
//	bspline knots --degree p --count n
//
// Point files contain one point per line as whitespace separated x, y, and z
// coordinates, optionally preceded by a "v" token. Empty lines and lines
// starting with # are ignored. Fitted curves are written as YAML definitions,
// which eval reads back and samples. Without a file argument, both commands
// read from standard input.
//
// Examples:
//
//	bspline fit -n 12 --param chordal scan.txt > scan.yaml
//	bspline fit --profile loop.toml loop.txt -o loop.yaml
//	bspline eval --rate 0.001 scan.yaml
//	bspline knots --degree 3 --count 7
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type app struct {
	verbose bool
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	root := &cobra.Command{
		Use:          "bspline",
		Short:        "Fit and sample B-spline curves",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug information")
	root.AddCommand(a.newFitCmd(), a.newEvalCmd(), newKnotsCmd())
	return root
}

// openInput opens the file named by the first argument, or returns the
// command's standard input if there is none or it is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}

// createOutput creates the named file, or returns the command's standard
// output if name is empty or "-".
func createOutput(cmd *cobra.Command, name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(name)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
