package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thruflo/sortviz/internal/sorting"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available sorting algorithms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listAlgorithms(cmd.OutOrStdout(), sorting.Default())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listAlgorithms(w io.Writer, reg *sorting.Registry) error {
	algs := reg.All()
	if len(algs) == 0 {
		fmt.Fprintln(w, "No algorithms registered.")
		return nil
	}

	width := len("KEY")
	for _, alg := range algs {
		width = max(width, len(alg.Key))
	}

	bold := color.New(color.Bold)
	key := color.New(color.FgCyan)

	bold.Fprintf(w, "%-*s  %s\n", width, "KEY", "NAME")
	for _, alg := range algs {
		key.Fprintf(w, "%-*s", width, alg.Key)
		fmt.Fprintf(w, "  %s\n", alg.Title)
	}
	return nil
}
