// Package main is the entry point for Infinicity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"infinicity/internal/config"
	"infinicity/internal/game"
	"infinicity/internal/telemetry"
	"infinicity/internal/termview"
)

func main() {
	if err := run(); err != nil {
		slog.Error("infinicity failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		term       = flag.Bool("term", false, "run the top-down terminal preview instead of the window")
		scroll     = flag.Float64("scroll", 0, "scroll distance per key press, overrides config")
		noAudio    = flag.Bool("no-audio", false, "disable sound")
	)
	flag.Parse()

	// .env is optional; variables may be set directly.
	envErr := godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *scroll != 0 {
		cfg.Scroll.Step = *scroll
	}
	if *noAudio {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn(".env not loaded", "err", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn("telemetry setup failed, running without traces", "err", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn("telemetry shutdown", "err", err)
				}
			}()
		}
	}

	if *term {
		return termview.Run(ctx, cfg.Scroll.Step, log)
	}

	fmt.Println(game.Help)
	if err := game.RunDesktop(ctx, cfg, log); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
