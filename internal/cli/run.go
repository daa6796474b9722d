package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thruflo/sortviz/internal/config"
	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/loop"
	"github.com/thruflo/sortviz/internal/stepper"
	"github.com/thruflo/sortviz/internal/tone"
	"github.com/thruflo/sortviz/internal/tone/otobackend"
	"github.com/thruflo/sortviz/internal/tui"
)

// shutdownTimeout bounds how long quitting waits for a cancelled run to
// unwind.
const shutdownTimeout = 2 * time.Second

type runFlags struct {
	algorithm string
	size      int
	speed     int
	maxSpeed  int
	fps       int
	sound     string
	volume    float64
	mute      bool
	autostart bool
	seed      uint64
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive visualizer session",
	Long: `Opens the bar chart in the terminal. Press space to sort, r to reshuffle,
x to cancel, up/down to change speed, left/right to pick an algorithm,
m to change what the tone follows, [ and ] to resize and q to quit.

Flags override the values in ` + config.Dir + `/config.yaml. Logs go to
` + config.Dir + `/` + config.DefaultLogFile + ` so they do not disturb the chart.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runOpts.algorithm, "algorithm", "a", config.DefaultAlgorithm, "algorithm to select at startup")
	f.IntVarP(&runOpts.size, "size", "n", config.DefaultSize, "number of values")
	f.IntVar(&runOpts.speed, "speed", config.DefaultSpeed, "initial speed; the step delay is max-speed minus speed in ms")
	f.IntVar(&runOpts.maxSpeed, "max-speed", config.DefaultMaxSpeed, "top of the speed range")
	f.IntVar(&runOpts.fps, "fps", config.DefaultFPS, "redraws per second")
	f.StringVar(&runOpts.sound, "sound", config.DefaultSoundMode, "what the tone follows: index, value or off")
	f.Float64Var(&runOpts.volume, "volume", config.DefaultVolume, "tone volume between 0 and 1")
	f.BoolVar(&runOpts.mute, "mute", false, "do not open the audio device")
	f.BoolVar(&runOpts.autostart, "autostart", false, "start sorting immediately")
	f.Uint64Var(&runOpts.seed, "seed", 0, "fix the shuffle sequence (0 picks a random one)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigFrom(configDir, func(cfg *config.Config) {
		applyRunFlags(cmd.Flags().Changed, runOpts, cfg)
	})
	if err != nil {
		return err
	}
	if err := requireTerminal(tui.NewTerminal(cmd.OutOrStdout())); err != nil {
		return err
	}

	logFile, err := logging.OpenFile(config.LogPath(configDir, cfg))
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := newSession(cfg, cmd.OutOrStdout(), soundBackend(cfg), runOpts.autostart)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Run(ctx); err != nil {
		return err
	}

	if res, ok := s.ctrl.LastResult(); ok {
		fmt.Fprintln(cmd.OutOrStdout(), tui.Summary(res))
	}
	return nil
}

// requireTerminal fails when the input is not a terminal, since the session
// needs raw keyboard input.
func requireTerminal(t *tui.Terminal) error {
	if !t.IsTerminal() {
		return errors.New("sortviz run needs an interactive terminal; use \"sortviz bench\" for headless runs")
	}
	return nil
}

// applyRunFlags copies the flags the user set over the loaded config.
func applyRunFlags(changed func(name string) bool, opts runFlags, cfg *config.Config) {
	if changed("algorithm") {
		cfg.Visualizer.Algorithm = opts.algorithm
	}
	if changed("size") {
		cfg.Visualizer.Size = opts.size
	}
	if changed("speed") {
		cfg.Visualizer.Speed = opts.speed
	}
	if changed("max-speed") {
		cfg.Visualizer.MaxSpeed = opts.maxSpeed
	}
	if changed("fps") {
		cfg.Visualizer.FPS = opts.fps
	}
	if changed("seed") {
		cfg.Visualizer.Seed = opts.seed
	}
	if changed("sound") {
		cfg.Sound.Mode = opts.sound
	}
	if changed("volume") {
		cfg.Sound.Volume = opts.volume
	}
	if changed("mute") && opts.mute {
		cfg.Sound.Enabled = false
	}
}

// soundBackend returns the audio device backend, or a silent one when sound
// is disabled.
func soundBackend(cfg *config.Config) tone.Backend {
	if !cfg.Sound.Enabled {
		return tone.NopBackend{}
	}
	buffer := time.Duration(cfg.Sound.BufferMS) * time.Millisecond
	return otobackend.New(cfg.Sound.SampleRate, buffer, cfg.Sound.Volume)
}

// session wires the controller, tone generator and terminal UI for one
// interactive run.
type session struct {
	ctrl *loop.Controller
	gen  *tone.Generator
	ui   *tui.TUI
}

func newSession(cfg *config.Config, out io.Writer, backend tone.Backend, autostart bool) (*session, error) {
	mode, err := tone.ParseMode(cfg.Sound.Mode)
	if err != nil {
		return nil, err
	}
	gen := tone.NewGenerator(backend, tone.NewOscillator(cfg.Sound.SampleRate), mode)

	var rng *rand.Rand
	if seed := cfg.Visualizer.Seed; seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	ctrl := loop.New(loop.Options{
		Speed:  stepper.NewSpeed(cfg.Visualizer.MaxSpeed, cfg.Visualizer.Speed),
		Output: gen,
		Rand:   rng,
		Logger: logging.Default(),
	})
	if _, err := ctrl.Reset(cfg.Visualizer.Size); err != nil {
		return nil, fmt.Errorf("failed to fill dataset: %w", err)
	}

	ui := tui.NewTUI(out, ctrl, gen, tui.Options{
		Algorithm: cfg.Visualizer.Algorithm,
		Size:      cfg.Visualizer.Size,
		MaxSize:   max(cfg.Visualizer.Size, tui.DefaultMaxSize),
		FPS:       cfg.Visualizer.FPS,
		Autostart: autostart,
		Logger:    logging.Default(),
	})

	return &session{ctrl: ctrl, gen: gen, ui: ui}, nil
}

// Run drives the UI until the user quits or ctx ends, then cancels any run
// in flight and releases the audio device.
func (s *session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return s.ui.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		s.ctrl.Cancel()

		waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer waitCancel()
		if err := s.ctrl.Wait(waitCtx); err != nil {
			return fmt.Errorf("run did not stop: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if closeErr := s.gen.Close(); closeErr != nil {
		logging.Warn("failed to close audio", "error", closeErr)
	}
	return err
}
