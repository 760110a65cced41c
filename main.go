package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"cryptodash/internal/config"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/dump"
	"cryptodash/internal/logger/sl"
	"cryptodash/internal/logger/slogpretty"
	"cryptodash/internal/market"
	"cryptodash/internal/series"
	"cryptodash/internal/theme"
	"cryptodash/internal/ui"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var (
		configPath = flag.String("config", "", "config path")
		dumpOnly   = flag.Bool("dump", false, "print a generated series as YAML and exit")
		instFlag   = flag.String("instrument", "", "instrument for -dump (Bitcoin, Solana)")
		rangeFlag  = flag.String("range", "", "time range for -dump (10m, 30m, 1h, 1D, 1M)")
		seedFlag   = flag.Int64("seed", 0, "random walk seed, 0 seeds from the clock")
	)
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)

	if *instFlag != "" {
		cfg.Dashboard.Instrument = *instFlag
	}
	if *rangeFlag != "" {
		cfg.Dashboard.Range = *rangeFlag
	}
	if *seedFlag != 0 {
		cfg.Generator.Seed = *seedFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", sl.Err(err))
		os.Exit(1)
	}
	sel, err := cfg.Selection()
	if err != nil {
		log.Error("invalid selection", sl.Err(err))
		os.Exit(1)
	}

	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := series.NewSeeded(seed)

	if *dumpOnly {
		if err := runDump(gen, sel.Instrument, sel.Range); err != nil {
			log.Error("dump series", sl.Err(err))
			os.Exit(1)
		}
		return
	}

	log.Info("starting crypto dashboard",
		slog.String("env", cfg.Env),
		slog.String("instrument", sel.Instrument.String()),
		slog.String("range", sel.Range.String()),
		slog.String("theme", sel.Theme.String()),
	)

	dash, err := dashboard.New(dashboard.Options{
		Instrument: sel.Instrument,
		Range:      sel.Range,
		Theme:      theme.NewState(sel.Theme),
		Generator:  gen,
		Preload:    cfg.Dashboard.Preload,
		Log:        log,
	})
	if err != nil {
		log.Error("init dashboard", sl.Err(err))
		os.Exit(1)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	fonts, err := ui.LoadFonts(deviceScale)
	if err != nil {
		log.Error("load fonts", sl.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game := ui.NewGame(ctx, log, dash, fonts, deviceScale)
	if err := ebiten.RunGame(game); err != nil {
		log.Error("run game", sl.Err(err))
		os.Exit(1)
	}

	log.Info("crypto dashboard stopped")
}

func runDump(gen *series.Generator, inst market.Instrument, r market.TimeRange) error {
	now := gen.Now()
	s, err := gen.Generate(inst, r, now)
	if err != nil {
		return err
	}
	return dump.Write(os.Stdout, dump.NewDocument(inst, r, now, s))
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
