// tui-demo is a manual test program for verifying the chart rendering.
// Run with: go run ./cmd/tui-demo
//
// It plays every built-in algorithm in turn on a small shuffled array with
// sound off, reshuffling between runs. The keys work as in "sortviz run";
// press q to leave early.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/loop"
	"github.com/thruflo/sortviz/internal/sorting"
	"github.com/thruflo/sortviz/internal/stepper"
	"github.com/thruflo/sortviz/internal/tui"
)

const (
	demoSize  = 48
	demoSpeed = 80
	demoPause = time.Second
)

func main() {
	fmt.Println("TUI Demo - Chart Rendering Test")
	fmt.Println("===============================")
	fmt.Println()
	fmt.Println("Each algorithm sorts the same size of array in turn.")
	fmt.Println("Watch for the red focus bar and the step counters.")
	fmt.Println()
	fmt.Println("Press Enter to start...")
	fmt.Scanln()

	if err := runDemo(); err != nil {
		fmt.Fprintf(os.Stderr, "Demo error: %v\n", err)
		os.Exit(1)
	}
}

func runDemo() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := loop.New(loop.Options{
		Speed:  stepper.NewSpeed(100, demoSpeed),
		Logger: logging.Discard(),
	})
	if _, err := ctrl.Reset(demoSize); err != nil {
		return err
	}

	names := sorting.Default().Names()
	ui := tui.NewTUI(os.Stdout, ctrl, nil, tui.Options{
		Algorithm: names[0],
		Logger:    logging.Discard(),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- ui.Run(ctx)
	}()

	var results []loop.Result
	driverDone := make(chan struct{})
	go func() {
		defer close(driverDone)
		defer cancel()
		for i := range names {
			if i > 0 {
				ui.Apply(ctx, tui.ActionNextAlgorithm)
				ui.Apply(ctx, tui.ActionReset)
			}
			if !sleep(ctx, demoPause) {
				return
			}
			ui.Apply(ctx, tui.ActionStart)
			if err := ctrl.Wait(ctx); err != nil {
				return
			}
			if res, ok := ctrl.LastResult(); ok {
				results = append(results, res)
			}
			if !sleep(ctx, demoPause) {
				return
			}
		}
	}()

	err := <-errCh
	cancel()
	<-driverDone
	ctrl.Cancel()
	_ = ctrl.Wait(context.Background())

	fmt.Println()
	for _, res := range results {
		fmt.Println(tui.Summary(res))
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	return stepper.Sleep(ctx, d) == nil
}
