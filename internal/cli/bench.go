package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/loop"
	"github.com/thruflo/sortviz/internal/sorting"
	"github.com/thruflo/sortviz/internal/stepper"
)

var (
	benchSize int
	benchSeed uint64
)

var benchCmd = &cobra.Command{
	Use:   "bench [algorithm...]",
	Short: "Run algorithms headless and compare their step counts",
	Long: `Runs each named algorithm (all of them by default) on the same seeded
permutation with no delay between steps, then prints a table of steps,
compares, swaps, writes and wall time. Fails if any result is not sorted.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVarP(&benchSize, "size", "n", 0, "number of values (default from config)")
	benchCmd.Flags().Uint64Var(&benchSeed, "seed", 1, "shuffle seed")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	size := benchSize
	if size <= 0 {
		size = cfg.Visualizer.Size
	}

	results, err := bench(cmd.Context(), sorting.Default(), args, size, benchSeed)
	if err != nil {
		return err
	}

	renderBench(cmd.OutOrStdout(), results)

	for _, res := range results {
		if !res.Sorted {
			return fmt.Errorf("%s left the values unsorted", res.Algorithm)
		}
	}
	return nil
}

// bench runs each algorithm in names against a copy of the same seeded
// permutation of 1..size. An empty names runs every registered algorithm.
func bench(ctx context.Context, reg *sorting.Registry, names []string, size int, seed uint64) ([]loop.Result, error) {
	if len(names) == 0 {
		names = reg.Names()
	}

	base := dataset.New()
	if err := base.Reset(size, rand.New(rand.NewPCG(seed, seed))); err != nil {
		return nil, fmt.Errorf("failed to shuffle: %w", err)
	}
	values := base.Snapshot()

	results := make([]loop.Result, 0, len(names))
	for _, name := range names {
		ctrl := loop.New(loop.Options{
			Registry: reg,
			Speed:    stepper.NewSpeed(0, 0),
			Sleep:    stepper.NoSleep,
			Logger:   logging.Default(),
			Dataset:  dataset.FromValues(values),
		})

		if _, err := ctrl.Start(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to start %s: %w", name, err)
		}
		if err := ctrl.Wait(ctx); err != nil {
			return nil, fmt.Errorf("interrupted while running %s: %w", name, err)
		}

		res, _ := ctrl.LastResult()
		if res.Reason != loop.ExitReasonCompleted {
			return nil, fmt.Errorf("%s run %s", name, res.Reason)
		}
		results = append(results, res)
	}
	return results, nil
}

func renderBench(w io.Writer, results []loop.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Algorithm", "N", "Steps", "Paced", "Compares", "Swaps", "Writes", "Time", "Sorted"})

	right := text.AlignRight
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: right},
		{Number: 3, Align: right},
		{Number: 4, Align: right},
		{Number: 5, Align: right},
		{Number: 6, Align: right},
		{Number: 7, Align: right},
		{Number: 8, Align: right},
	})

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	for _, res := range results {
		sorted := ok("yes")
		if !res.Sorted {
			sorted = bad("no")
		}
		tbl.AppendRow(table.Row{
			res.Algorithm,
			humanize.Comma(int64(res.Size)),
			humanize.Comma(res.Steps),
			humanize.Comma(res.PacedSteps),
			humanize.Comma(res.Counts.Compares),
			humanize.Comma(res.Counts.Swaps),
			humanize.Comma(res.Counts.Writes),
			res.Elapsed.Round(time.Microsecond).String(),
			sorted,
		})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d algorithms", len(results))})
	tbl.Render()
}
