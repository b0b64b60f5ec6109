package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/gridhunt/ai"
	"github.com/milk9111/gridhunt/prefabs"
)

type options struct {
	level       string
	frames      int
	tps         int
	reportEvery int
	debug       bool
	watch       bool
	prefabDir   string
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "arena", "level name in levels/")
	flag.IntVar(&opts.frames, "frames", 3600, "stop after this many frames")
	flag.IntVar(&opts.tps, "tps", 0, "frames per second, 0 runs as fast as possible")
	flag.IntVar(&opts.reportEvery, "report", 600, "log a summary every n frames, 0 disables")
	flag.BoolVar(&opts.debug, "debug", false, "log AI state changes")
	flag.BoolVar(&opts.watch, "watch", false, "hot reload prefabs from -prefabs")
	flag.StringVar(&opts.prefabDir, "prefabs", prefabs.Dir, "on-disk prefab directory")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	prefabs.Dir = opts.prefabDir
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		return fmt.Errorf("loading tuning: %w", err)
	}
	ai.EnableDebugLogging(opts.debug || tuning.Debug)

	reloads := make(chan ai.Archetype, 16)
	s, err := newSim(opts.level, reloads)
	if err != nil {
		return fmt.Errorf("loading level: %w", err)
	}
	slog.Info("aisim starting", "level", s.level, "frames", opts.frames, "tps", opts.tps, "watch", opts.watch)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()
		result, err := s.run(gctx, opts.frames, opts.tps, opts.reportEvery)
		slog.Info("aisim finished", "level", s.level, "outcome", result, "frame", s.frame, "player_health", s.playerHealth())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if opts.watch {
		watcher, err := prefabs.NewWatcher(opts.prefabDir, filepath.Join(opts.prefabDir, "scripts"))
		if err != nil {
			return fmt.Errorf("watching prefabs: %w", err)
		}
		g.Go(func() error {
			defer watcher.Close()
			return watcher.Forward(gctx, reloads)
		})
	}

	return g.Wait()
}
