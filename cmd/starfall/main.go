package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/audio"
	"github.com/lixenwraith/starfall/config"
	"github.com/lixenwraith/starfall/flow"
	"github.com/lixenwraith/starfall/game"
	"github.com/lixenwraith/starfall/logger"
	"github.com/lixenwraith/starfall/loop"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/wave"
)

const (
	starCount     = 40
	gameOverDelay = 10 * time.Second
)

type flags struct {
	config     string
	mute       bool
	cpuProfile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the starfall command; it is called once in main
func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "starfall",
		Short:        "Terminal arcade shooter",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "starfall.toml", "TOML config path; missing file uses defaults")
	cmd.Flags().BoolVar(&f.mute, "mute", false, "disable sound")
	cmd.Flags().StringVar(&f.cpuProfile, "cpuprofile", "", "write a CPU profile into this directory")
	return cmd
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.mute {
		cfg.Audio.Enabled = false
	}

	if f.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(f.cpuProfile), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	table, err := wave.Load(cfg.Waves.Path)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			handleCrash(screen, r)
		}
	}()
	screen.HideCursor()

	sound := audio.NewManager(cfg.Audio, log)
	if err := sound.Init(); err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Close()

	canvas := render.NewCanvas(screen)
	metrics := status.NewRegistry()
	clock := loop.NewClock(nil)
	driver := loop.NewDriver(loop.Options{
		Interval: cfg.FrameInterval(),
		MaxDelta: cfg.Game.MaxDelta,
		Clock:    clock,
		Metrics:  metrics,
		Logger:   log,
		OnPanic:  func(r any) { handleCrash(screen, r) },
	})

	seed := uint64(time.Now().UnixNano())
	newSession := func(id string) (*game.Session, error) {
		seed++
		return game.NewSession(game.Options{
			ID:           id,
			Canvas:       canvas,
			Audio:        sound,
			Table:        table,
			Lives:        cfg.Game.Lives,
			DefaultLayer: cfg.Game.DefaultLayer,
			Minimap:      cfg.Game.Minimap,
			Stars:        starCount,
			Seed:         seed,
			FPS:          driver.FPS,
			Logger:       log,
		})
	}

	stage, err := flow.New(flow.Options{
		Canvas:        canvas,
		NewSession:    newSession,
		Clock:         clock,
		Metrics:       metrics,
		Logger:        log,
		GameOverDelay: gameOverDelay,
	})
	if err != nil {
		return err
	}
	driver.SetStage(stage)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starfall started", zap.String("config", f.config), zap.Bool("audio", cfg.Audio.Enabled))
	err = driver.Run(ctx, pollEvents(screen), stage.Handle, func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	log.Info("starfall stopped", zap.Any("metrics", metrics.Snapshot()))
	return err
}

// pollEvents adapts the tcell event queue; an interrupt stops the pump
func pollEvents(screen tcell.Screen) loop.EventSource {
	return func() (any, bool) {
		ev := screen.PollEvent()
		if ev == nil {
			return nil, false
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			return nil, false
		}
		return ev, true
	}
}
