package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	cerrors "github.com/vango-dev/cells/internal/errors"
	"github.com/vango-dev/cells/internal/config"
	"github.com/vango-dev/cells/pkg/component"
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/scheduler"
)

var demos = map[string]func(w io.Writer, logger *slog.Logger, delay time.Duration) error{
	"counter":     runCounterDemo,
	"conditional": runConditionalDemo,
	"deferred":    runDeferredDemo,
}

func demoCmd(configDir *string) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "demo [counter|conditional|deferred]",
		Short: "Run a scripted demo and print the DOM after every tick",
		Long: `Run a scripted demo against an in-process document.

Demos:
  counter      a button that increments a counter
  conditional  a branch that is switched out and back in
  deferred     clicks that update the counter after a delay

Examples:
  cells demo counter
  cells demo deferred --delay=200ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := demos[args[0]]
			if !ok {
				return cerrors.New("R120").WithDetail(fmt.Sprintf("No demo named %q", args[0]))
			}
			cfg, err := config.Load(*configDir)
			if err != nil {
				return err
			}
			cfg.Apply()
			return run(cmd.OutOrStdout(), newLogger(cfg, os.Stderr), delay)
		},
	}

	cmd.Flags().DurationVarP(&delay, "delay", "d", 100*time.Millisecond, "Delay of the deferred demo")
	return cmd
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// click dispatches a click on the element with the given id.
func click[D any](h *component.Handle[D], id string) error {
	n := findByID(h.Node(), id)
	if n == nil || !h.Dispatch(n.HID(), "click", "") {
		return fmt.Errorf("no clickable element %q", id)
	}
	return nil
}

func runCounterDemo(w io.Writer, logger *slog.Logger, _ time.Duration) error {
	doc := dom.NewDocument()
	h, err := component.Mount(newCounterApp(), component.Fn(counterView), doc.Body(), component.WithLogger(logger))
	if err != nil {
		return err
	}
	defer h.Unmount()

	info(w, "mounted:  %s", h.HTML())
	for i := 1; i <= 3; i++ {
		if err := click(h, "inc"); err != nil {
			return err
		}
		info(w, "click %d:  %s", i, h.HTML())
	}
	success(w, "counter demo finished")
	return nil
}

func runConditionalDemo(w io.Writer, logger *slog.Logger, _ time.Duration) error {
	doc := dom.NewDocument()
	h, err := component.Mount(newToggleApp(), component.Fn(toggleView), doc.Body(), component.WithLogger(logger))
	if err != nil {
		return err
	}
	defer h.Unmount()

	steps := []struct{ label, id string }{
		{"increment", "inc"},
		{"hide", "flip"},
		{"increment while hidden", "inc"},
		{"show", "flip"},
	}
	info(w, "mounted (%d hooks): %s", h.Root().Engine().Store().Len(), h.HTML())
	for _, s := range steps {
		if err := click(h, s.id); err != nil {
			return err
		}
		info(w, "%s (%d hooks): %s", s.label, h.Root().Engine().Store().Len(), h.HTML())
	}
	success(w, "conditional demo finished")
	return nil
}

func runDeferredDemo(w io.Writer, logger *slog.Logger, delay time.Duration) error {
	loop, err := scheduler.NewLoop(scheduler.WithLoopLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = loop.Close(ctx)
	}()

	doc := dom.NewDocument()
	h, err := component.Mount(newDelayedApp(delay), component.Fn(delayedView), doc.Body(),
		component.WithHost(loop), component.WithLogger(logger))
	if err != nil {
		return err
	}
	defer h.Unmount()

	info(w, "mounted:        %s", h.HTML())
	for i := 1; i <= 2; i++ {
		if err := click(h, "inc"); err != nil {
			return err
		}
		info(w, "click %d:        %s", i, h.HTML())
	}
	h.Wait()
	info(w, "after %-9s %s", delay.String()+":", h.HTML())
	success(w, "deferred demo finished")
	return nil
}
