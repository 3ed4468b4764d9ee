package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/ordtree/bench"
	"github.com/benz9527/ordtree/lib/infra"
	"github.com/benz9527/ordtree/lib/xlog"
	"github.com/benz9527/ordtree/observability"
)

func newLogger(lc fx.Lifecycle, cfg *bench.Config) xlog.XLogger {
	logger := xlog.NewXLogger(
		xlog.WithXLoggerLevel(xlog.LogLevel(cfg.LogLevel)),
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerConsoleCore(),
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger
}

func newRunner(lc fx.Lifecycle, cfg *bench.Config, logger xlog.XLogger) (*bench.Runner, error) {
	opts := make([]bench.RunnerOption, 0, 1)
	if cfg.Metrics != bench.NoMetrics {
		opts = append(opts, bench.WithRunnerTreeStats())
	}
	r, err := bench.NewRunner(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			r.Release()
			return nil
		},
	})
	return r, nil
}

func setMaxProcs(lc fx.Lifecycle, logger xlog.XLogger) error {
	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.InfoLevel, format, args...)
	}))
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			return nil
		},
	})
	return nil
}

func registerMetrics(lc fx.Lifecycle, cfg *bench.Config, logger xlog.XLogger) error {
	var shutdown observability.ShutdownFunc
	switch cfg.Metrics {
	case bench.ConsoleMetrics:
		var err error
		if shutdown, err = observability.NewConsoleMetricsExporter(os.Stdout, 10*time.Second, 5*time.Second); err != nil {
			return infra.WrapErrorStack(err)
		}
		lc.Append(fx.Hook{OnStop: shutdown})
	case bench.PrometheusMetrics:
		var (
			handler http.Handler
			err     error
		)
		if shutdown, handler, err = observability.NewPrometheusMetricsExporter(); err != nil {
			return infra.WrapErrorStack(err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				ln, err := net.Listen("tcp", cfg.MetricsAddr)
				if err != nil {
					return infra.WrapErrorStack(err)
				}
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error(err, "[treebench] metrics server stopped")
					}
				}()
				logger.Info("[treebench] serving metrics", zap.String("addr", ln.Addr().String()))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return infra.AppendErrorStack(srv.Shutdown(ctx), shutdown(ctx))
			},
		})
	default:
		return nil
	}
	return observability.InitAppStats("treebench")
}

// profileFiles maps the profile types to the output files. An empty path
// disables the profile.
type profileFiles struct {
	cpu string
	mem string
}

func startProfile(lc fx.Lifecycle, typ observability.ProfileType, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	stop, err := observability.StartProfile(typ, f)
	if err != nil {
		_ = f.Close()
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return infra.AppendErrorStack(stop(), f.Close())
		},
	})
	return nil
}

func newApp(cfg *bench.Config, profiles profileFiles, populate ...any) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.Provide(newLogger, newRunner),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(setMaxProcs, registerMetrics),
		fx.Invoke(func(lc fx.Lifecycle) error {
			if err := startProfile(lc, observability.CPUProfile, profiles.cpu); err != nil {
				return err
			}
			return startProfile(lc, observability.MemProfile, profiles.mem)
		}),
		fx.Populate(populate...),
	)
}

func run(ctx context.Context, cfg *bench.Config, profiles profileFiles) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		runner *bench.Runner
		logger xlog.XLogger
	)
	app := newApp(cfg, profiles, &runner, &logger)
	if err = app.Err(); err != nil {
		return err
	}
	startCtx, startCancel := context.WithTimeout(ctx, app.StartTimeout())
	defer startCancel()
	if err = app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer stopCancel()
		err = infra.AppendErrorStack(err, app.Stop(stopCtx))
	}()

	report, err := runner.Run(ctx)
	if err != nil {
		logger.ErrorStack(err, "[treebench] run failed")
		return err
	}
	report.Log(logger)
	if cfg.Output != "" {
		if err = writeReport(cfg.Output, report); err != nil {
			return err
		}
	}
	if cfg.Metrics == bench.PrometheusMetrics {
		logger.Info("[treebench] waiting for the signal to stop")
		<-ctx.Done()
	}
	return nil
}

func writeReport(path string, report *bench.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	return infra.AppendErrorStack(report.WriteYAML(f), f.Close())
}
