// Command judged runs the programming-contest judging core: it loads
// configuration, wires the language registry, test-case loader,
// execution pipeline, worker pool, verdict table and facade together,
// then serves the TCP request multiplexer (and, if configured, a
// Prometheus metrics endpoint) until it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"judged/internal/config"
	"judged/internal/facade"
	"judged/internal/metrics"
	"judged/internal/obslog"
	"judged/internal/pipeline"
	"judged/internal/pool"
	"judged/internal/registry"
	"judged/internal/server"
	"judged/internal/testcases"
)

func main() {
	configPath := flag.String("config", "judge.toml", "path to the TOML configuration file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "console", "log format: console or json")
	flag.Parse()

	if err := obslog.Init(obslog.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer obslog.Sync()

	if err := run(*configPath); err != nil {
		obslog.L().Error("judged exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(configPath string) error {
	log := obslog.L()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var supported []string
	if cfg.Languages.Enabled {
		supported = cfg.Languages.Supported
	}
	reg := registry.New(supported)
	log.Info("language registry built", zap.Int("languages", reg.Len()))

	loader := testcases.New(cfg.Languages.TestCasesDir)
	pl := pipeline.New(reg, loader, cfg.Languages.TempDir)

	p := pool.New(cfg.Server.MaxThreads, cfg.Server.MaxQueue, pl)
	f := facade.New(p)

	if cfg.Server.MetricsAddr != "" {
		go serveMetrics(cfg.Server.MetricsAddr)
	}

	srv := server.New(cfg.Addr(), f)
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrCh:
		return fmt.Errorf("request multiplexer: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received, draining worker pool")
	}

	shutdownDone := make(chan struct{})
	go func() {
		f.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		log.Info("worker pool drained, exiting")
	case <-time.After(30 * time.Second):
		log.Warn("worker pool drain timed out, exiting anyway")
	}
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	obslog.L().Info("metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		obslog.L().Warn("metrics server stopped", zap.Error(err))
	}
}
