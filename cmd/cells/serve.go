package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/cells/internal/config"
	"github.com/vango-dev/cells/pkg/component"
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/live"
	"github.com/vango-dev/cells/pkg/scheduler"
	"github.com/vango-dev/cells/pkg/telemetry"
)

func serveCmd(configDir *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live counter app",
		Long: `Serve the counter app to browsers.

The page mirrors an in-process document over a websocket. Clicks in the
browser run as ticks on the server's event loop.

Examples:
  cells serve
  cells serve --listen=:9000
  CELLS_DEBUG=1 cells serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			cfg.Apply()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (default from config)")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	logger := newLogger(cfg, cmd.ErrOrStderr())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tel := telemetry.New(telemetry.WithRegistry(reg), telemetry.WithTracerName(cfg.TracerName))
	defer tel.WatchPanics()()

	loop, err := scheduler.NewLoop(scheduler.WithLoopLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loop.Close(shutdownCtx)
	}()

	doc := dom.NewDocument()
	h, err := component.Mount(newCounterApp(), component.Fn(counterView), doc.Body(),
		component.WithHost(loop), component.WithLogger(logger), component.WithObserver(tel))
	if err != nil {
		return err
	}
	defer h.Unmount()

	opts := []live.Option{live.WithLogger(logger), live.WithTitle("cells counter")}
	if cfg.MetricsPath != "" {
		opts = append(opts, live.WithMetrics(cfg.MetricsPath, tel.Handler()))
	}
	srv := live.New(doc, h, loop, opts...)
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	success(out, "Serving on http://%s", cfg.Listen)
	if cfg.MetricsPath != "" {
		info(out, "Metrics at http://%s%s", cfg.Listen, cfg.MetricsPath)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(out, "\n  Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
