package assertion

import (
	"context"
	"errors"
	"fmt"

	"digital.vasic.expect/pkg/env"
	"digital.vasic.expect/pkg/jsonmatch"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/metrics"
	"digital.vasic.expect/pkg/monitor"
	"digital.vasic.expect/pkg/plugin"
)

// Runtime is an engine wired from an env.Config together with the
// logger, metrics, event collector and stream server it owns.
type Runtime struct {
	Engine    *DefaultEngine
	Logger    logging.Logger
	Metrics   *metrics.InMemoryMetrics
	Collector *monitor.EventCollector

	// Stream is nil unless the config sets a monitor address.
	Stream *monitor.StreamServer

	cancel context.CancelFunc
}

// NewLogger builds the logger described by cfg: console output,
// plus JSON run and assertion logs when LogPath is set.
func NewLogger(cfg env.Config) (logging.Logger, error) {
	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level: %s", cfg.LogLevel)
	}

	console := logging.NewConsoleLogger(cfg.Verbose)
	if cfg.LogPath == "" {
		return console, nil
	}

	file, err := logging.OpenDir(cfg.LogPath, level, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logging.NewMultiLogger(console, file), nil
}

// Open creates a Runtime from cfg and installs the JSON matchers and
// plugins into its engine. When cfg.MonitorAddr is set the stream server is started
// in the background and stopped by Close or by cancelling ctx.
func Open(ctx context.Context, cfg env.Config, plugins ...plugin.Plugin) (*Runtime, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Logger:    logger,
		Metrics:   metrics.NewInMemoryMetrics(),
		Collector: monitor.NewEventCollector(),
	}
	rt.Engine = NewEngine(
		WithLogger(logger),
		WithMetrics(rt.Metrics),
		WithCollector(rt.Collector),
		WithPrecision(cfg.Precision),
		WithFailFast(cfg.FailFast),
	)

	pctx := &plugin.PluginContext{Registry: rt.Engine.Registry(), Logger: logger}
	all := append([]plugin.Plugin{jsonmatch.Plugin()}, plugins...)
	if err := plugin.NewRegistry().Install(pctx, all...); err != nil {
		_ = logger.Close()
		return nil, err
	}

	if cfg.MonitorAddr != "" {
		rt.Stream = monitor.NewStreamServer(cfg.MonitorAddr, rt.Collector)
		var streamCtx context.Context
		streamCtx, rt.cancel = context.WithCancel(ctx)
		go func() {
			if err := rt.Stream.Start(streamCtx); err != nil {
				logger.Error("monitor stopped", logging.ErrorField(err))
			}
		}()
		logger.Info("monitor listening", logging.StringField("addr", cfg.MonitorAddr))
	}
	return rt, nil
}

// Close stops the stream server and closes the logger.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.Stream != nil {
		if err := r.Stream.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop monitor: %w", err))
		}
		r.cancel()
	}
	if err := r.Logger.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close logger: %w", err))
	}
	return errors.Join(errs...)
}
