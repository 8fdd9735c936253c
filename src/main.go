package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"liftsim/src/cabin"
	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/display"
	"liftsim/src/floors"
	"liftsim/src/spawner"
	"liftsim/src/timer"
	"liftsim/src/utils"
)

func main() {
	envPath := flag.String("env", ".env", "optional .env file with LIFTSIM_* settings")
	configPath := flag.String("config", "", "YAML file overriding the built-in constants")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	logFile := flag.String("log-file", "", "also write logs to this file")
	seed := flag.Uint64("seed", 0, "random seed for spawning (0 picks one from the clock)")
	flag.Parse()

	if err := run(*envPath, *configPath, *logLevel, *logFile, *seed); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "liftsim:", err)
		os.Exit(1)
	}
}

func run(envPath, configPath, logLevel, logFile string, seed uint64) error {
	env, err := config.ResolveEnv(envPath)
	if err != nil {
		return err
	}
	configPath = firstNonEmpty(configPath, env.ConfigPath)
	logFile = firstNonEmpty(logFile, env.LogFile)
	if seed == 0 {
		seed = env.Seed
		if !env.HasSeed {
			seed = uint64(time.Now().UnixNano())
		}
	}

	level, err := utils.ParseLevel(firstNonEmpty(logLevel, env.LogLevel))
	if err != nil {
		return err
	}
	closeLog, err := utils.InitLogger(level, os.Stderr, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	slog.Info("Starting simulation", "config", cfg, "seed", seed)

	clock := timer.RealClock{}
	console := display.NewConsole(os.Stdout)
	registry := floors.New(cfg.NumFloors)
	spawn := spawner.New(cfg, registry, clock, console, seed)
	dispatch := dispatcher.New(cfg, cabin.New(cfg, clock, cfg.TravelDuration), registry, clock, console)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return dispatch.Run(ctx) })
	g.Go(func() error { return spawn.Run(ctx) })
	g.Go(func() error {
		return console.Run(ctx, clock, cfg.StatusInterval, dispatch.Snapshot, spawn.Stats)
	})
	err = g.Wait()

	state, stats := dispatch.Snapshot(), spawn.Stats()
	slog.Info("Simulation stopped",
		"spawned", stats.Spawned,
		"shed", stats.Shed,
		"delivered", state.Delivered,
		"waiting", state.Waiting(),
		"aboard", len(state.Passengers))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
