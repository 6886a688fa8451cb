package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"secretcode/pkg/engine/input"
	"secretcode/pkg/engine/storage"
	"secretcode/pkg/engine/terminal"
	"secretcode/pkg/engine/timer"
	"secretcode/pkg/game/catalog"
	"secretcode/pkg/game/config"
	"secretcode/pkg/game/menu"
	"secretcode/pkg/game/progress"
	"secretcode/pkg/game/puzzle"
	"secretcode/pkg/game/renderer"
	ebitenrenderer "secretcode/pkg/game/renderer/ebiten"
	"secretcode/pkg/game/renderer/tui"
	"secretcode/pkg/game/session"
	"secretcode/pkg/game/state"
)

var (
	configPath string
	verbose    bool
	frontend   string
	passcode   int

	cfg    *config.Config
	logger = zap.NewNop()
	runID  = uuid.NewString()
)

var rootCmd = &cobra.Command{
	Use:   "secretcode",
	Short: "Secret Code: a wall of poster puzzles, each hiding a seven-letter word",
	Long: `Secret Code is a wall of poster puzzles. Open a poster, work out the
seven-letter word it hides, and type it on the on-screen keyboard.

Run without arguments to play in the terminal, or with --frontend window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("frontend") {
			cfg.Frontend = frontend
		}
		if cmd.Flags().Changed("passcode") {
			cfg.Passcode = passcode
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = newLogger(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run", runID))

		gotext.Configure(cfg.LocaleDir, cfg.Locale, "default")
		applyBindings(cfg.Bindings)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runGame,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which posters are solved",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, prog, reg, err := openProgress(cmd.Context())
		if err != nil {
			return err
		}
		defer kv.Close()

		out := cmd.OutOrStdout()
		record := prog.Record()
		for _, i := range reg.Indices() {
			d, _ := reg.Lookup(i)
			mark := gotext.Get("STATUS_OPEN")
			switch {
			case prog.Solved(i):
				mark = gotext.Get("STATUS_SOLVED")
			case record[i] < 0:
				mark = gotext.Get("STATUS_MISSES", -record[i])
			}
			fmt.Fprintf(out, "%2d  %-16s %s\n", i, d.Title, mark)
		}
		if prog.AllSolved(reg.Indices()) {
			fmt.Fprintln(out, gotext.Get("VICTORY"))
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget all solved posters and failed attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, prog, _, err := openProgress(cmd.Context())
		if err != nil {
			return err
		}
		defer kv.Close()
		if err := prog.Reset(cmd.Context()); err != nil {
			return err
		}
		logger.Info("progress reset from command line")
		fmt.Fprintln(cmd.OutOrStdout(), gotext.Get("PROGRESS_RESET"))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "secretcode.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&frontend, "frontend", config.FrontendTerminal, "Front-end: tui or window")
	rootCmd.Flags().IntVar(&passcode, "passcode", 0, "Bonus poster passcode")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a production logger writing to the configured file, so
// log lines never interleave with the terminal screen.
func newLogger(lc config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if lc.File != "" {
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

// applyBindings installs the configured key bindings over the defaults.
func applyBindings(b map[string]string) {
	for name, code := range b {
		action, ok := input.ActionByName(name)
		if !ok {
			logger.Warn("unknown action in bindings", zap.String("action", name))
			continue
		}
		if !input.SetSingleBinding(action, code) {
			logger.Warn("binding rejected", zap.String("action", name), zap.String("code", code))
		}
	}
}

func openProgress(ctx context.Context) (storage.Store, *progress.Store, *puzzle.Registry, error) {
	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	prog, err := progress.Load(ctx, kv, logger.Named("progress"))
	if err != nil {
		kv.Close()
		return nil, nil, nil, err
	}
	reg, err := catalog.New(catalog.Options{CountdownDuration: cfg.Countdown})
	if err != nil {
		kv.Close()
		return nil, nil, nil, err
	}
	return kv, prog, reg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, prog, reg, err := openProgress(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	logger.Info("starting",
		zap.String("frontend", cfg.Frontend),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("posters", reg.Len()))

	g := state.NewGame()
	var audio puzzle.Audio = tui.Bell{Out: os.Stdout}
	if cfg.Frontend == config.FrontendWindow {
		audio = ebitenrenderer.NewSpeaker(logger.Named("audio"))
	}

	ctrl, err := session.New(session.Options{
		Context:   ctx,
		Registry:  reg,
		Progress:  prog,
		Presenter: g,
		Audio:     audio,
		Timers:    timer.New(cfg.Tick, logger.Named("timer")),
		Passcode:  cfg.ResolvePasscode(),
		Logger:    logger.Named("session"),
	})
	if err != nil {
		return err
	}
	m := menu.New(menu.PosterItems(g.Menu), menu.NewPosterMenuHandler(ctrl))

	if cfg.Frontend == config.FrontendWindow {
		win := ebitenrenderer.New(logger.Named("window"))
		renderer.SetRenderer(win)
		renderer.Init()
		return win.Run(ebitenrenderer.RunOptions{Game: g, Session: ctrl, Menu: m})
	}

	t := tui.New(os.Stdout)
	renderer.SetRenderer(t)
	renderer.Init()
	err = t.Run(ctx, tui.RunOptions{
		Game:    g,
		Session: ctrl,
		Menu:    m,
		In:      os.Stdin,
		Tick:    cfg.Tick,
		Raw:     terminal.IsInteractive(),
		Logger:  logger.Named("tui"),
	})
	renderer.Clear()
	fmt.Println(renderer.StyleText(gotext.Get("GOODBYE"), renderer.StyleTitle))
	return err
}
