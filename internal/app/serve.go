package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rbright/animalese/internal/audio"
	"github.com/rbright/animalese/internal/config"
	"github.com/rbright/animalese/internal/dispatch"
	"github.com/rbright/animalese/internal/health"
	"github.com/rbright/animalese/internal/indicator"
	"github.com/rbright/animalese/internal/ipc"
	"github.com/rbright/animalese/internal/logging"
	"github.com/rbright/animalese/internal/observe"
	"github.com/rbright/animalese/internal/session"
	"github.com/rbright/animalese/internal/sink"
	"github.com/rbright/animalese/internal/version"
)

// commandServe owns the runtime socket and runs the daemon until stop or signal.
func (r Runner) commandServe(ctx context.Context, loaded config.Loaded, logRuntime logging.Runtime, logger *slog.Logger) int {
	cfg := loaded.Config

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	listener, err := ipc.Acquire(ctx, socketPath, 180*time.Millisecond, 8, nil)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer ipc.Release(listener, socketPath)

	logger = logger.With("instance", uuid.NewString())

	metrics := observe.Discard()
	var provider *observe.Provider
	if strings.TrimSpace(cfg.Metrics.Listen) != "" {
		provider, err = observe.InitProvider(version.Version)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: init metrics: %v\n", err)
			return 1
		}
		metrics = provider.Metrics
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = provider.Shutdown(shutdownCtx)
		}()
	}

	layout, err := assetLayout(cfg)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	notifier := indicator.NewNotifier(cfg.Indicator, logger)
	defer notifier.Wait()

	sinks, closeSinks := buildSinks(ctx, cfg, metrics, logger)
	defer closeSinks()

	dispatcher := dispatch.New(dispatch.Options{
		Layout:   layout,
		Sinks:    sinks,
		Fallback: sink.NewBell(r.Stdout, notifier),
		Logger:   logger,
		Metrics:  metrics,
	})

	var (
		healthSrv      *health.Server
		healthListener net.Listener
		sessionHealth  session.Health
	)
	if addr := strings.TrimSpace(cfg.Health.GRPCAddr); addr != "" {
		healthListener, err = net.Listen("tcp", addr)
		if err != nil {
			fmt.Fprintf(r.Stderr, "error: listen health %s: %v\n", addr, err)
			return 1
		}
		healthSrv = health.NewServer()
		sessionHealth = healthSrv
	}

	var metricsListener net.Listener
	if provider != nil {
		metricsListener, err = net.Listen("tcp", cfg.Metrics.Listen)
		if err != nil {
			if healthListener != nil {
				_ = healthListener.Close()
			}
			fmt.Fprintf(r.Stderr, "error: listen metrics %s: %v\n", cfg.Metrics.Listen, err)
			return 1
		}
	}

	controller := session.NewController(cfg, session.Options{
		Logger:    logger,
		Player:    dispatcher,
		Indicator: notifier,
		Health:    sessionHealth,
	})

	watcher := config.NewWatcher(loaded, func(_, next config.Loaded) {
		logRuntime.SetDebug(next.Config.Debug)
		controller.ApplyConfig(next.Config)
	}, config.WithLogger(logger))
	defer watcher.Stop()

	logger.Info("daemon start",
		"socket", socketPath,
		"assets", layout.Root,
		"sinks", sinkNames(sinks),
		"health", cfg.Health.GRPCAddr,
		"metrics", cfg.Metrics.Listen,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		return controller.Run(gctx)
	})
	g.Go(func() error {
		return ipc.Serve(gctx, listener, controller)
	})
	if healthSrv != nil {
		g.Go(func() error {
			return healthSrv.Serve(gctx, healthListener)
		})
	}
	if metricsListener != nil {
		g.Go(func() error {
			return observe.Serve(gctx, metricsListener, provider.Handler)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon failed", "error", err.Error())
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	logger.Info("daemon stop")
	return 0
}

// buildSinks returns the ordered sink list: the external player for samples,
// then PulseAudio for samples and tones. The player argv comes from config,
// which already split and validated player_cmd.
func buildSinks(ctx context.Context, cfg config.Config, metrics *observe.Metrics, logger *slog.Logger) ([]sink.Sink, func()) {
	var sinks []sink.Sink
	closeFn := func() {}

	if len(cfg.Audio.Player.Argv) > 0 {
		player, err := sink.NewCommand(cfg.Audio.Player.Argv)
		if err != nil {
			logger.Warn("player command disabled", "error", err.Error())
		} else {
			sinks = append(sinks, player)
		}
	}

	if cfg.Audio.Pulse {
		device := cfg.Audio.Device
		selection, err := audio.SelectDevice(ctx, device)
		switch {
		case err != nil:
			logger.Warn("audio device selection failed", "device", device, "error", err.Error())
		default:
			if selection.Warning != "" {
				logger.Warn("audio device fallback", "warning", selection.Warning)
			}
			device = selection.Device.ID
		}

		pulseSink := sink.NewPulse(device, metrics)
		sinks = append(sinks, pulseSink)
		closeFn = pulseSink.Close
	}

	return sinks, closeFn
}

func sinkNames(sinks []sink.Sink) []string {
	names := make([]string, 0, len(sinks))
	for _, s := range sinks {
		names = append(names, s.Name())
	}
	return names
}
