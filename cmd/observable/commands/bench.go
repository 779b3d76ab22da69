// Copyright 2025 Observekit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/observekit/observable/pkg/config"
	"github.com/observekit/observable/pkg/logging"
	"github.com/observekit/observable/pkg/observable"
)

// Styles for the bench summary block.
var (
	benchTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	benchLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")) // Gray

	benchValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green
)

// asyncDrainTimeout bounds the wait for fire-and-forget handlers after the
// trigger loops finish.
const asyncDrainTimeout = 30 * time.Second

type benchResult struct {
	RunID         string
	Events        int
	SyncHandlers  int
	AsyncHandlers int
	Triggers      int
	SyncCalls     int64
	AsyncCalls    int64
	PayloadTotal  int64
	Elapsed       time.Duration
}

func newBenchCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Exercise the registry with synthetic handlers and triggers",
		Long: `Bench registers a configurable number of synchronous and asynchronous
handlers across a set of events, fires each event repeatedly in both trigger
modes, and prints a summary of the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), cfg.Bench, cfg.Log)
		},
	}
}

func runBench(ctx context.Context, out io.Writer, bc config.BenchConfig, lc config.LogConfig) error {
	runID := uuid.NewString()
	logger := logging.NewLogger("bench", logging.ParseLevel(lc.Level))
	obs := observable.New(observable.WithLogger(logger))

	var (
		syncCalls    atomic.Int64
		asyncCalls   atomic.Int64
		payloadTotal atomic.Int64
		wg           sync.WaitGroup
	)

	events := make([]string, bc.Events)
	for i := range events {
		events[i] = fmt.Sprintf("bench.%d", i)
	}

	for _, event := range events {
		for i := 0; i < bc.SyncHandlers; i++ {
			obs.On(event, observable.Func(func(args ...any) error {
				syncCalls.Add(1)
				payloadTotal.Add(cast.ToInt64(args[1]))
				return nil
			}))
		}
		for i := 0; i < bc.AsyncHandlers; i++ {
			obs.On(event, observable.AsyncFunc(func(ctx context.Context, args ...any) error {
				defer wg.Done()
				asyncCalls.Add(1)
				payloadTotal.Add(cast.ToInt64(args[1]))
				return nil
			}))
		}
	}

	// Each async handler fires once per trigger in both phases.
	wg.Add(2 * bc.Events * bc.AsyncHandlers * bc.Triggers)

	logger.Info().
		Str("run_id", runID).
		Int("events", bc.Events).
		Int("triggers", bc.Triggers).
		Msg("bench run starting")

	start := time.Now()
	for i := 0; i < bc.Triggers; i++ {
		for _, event := range events {
			if _, err := obs.TriggerSync(ctx, event, runID, bc.Payload); err != nil {
				return fmt.Errorf("sync trigger %s: %w", event, err)
			}
		}
	}
	for i := 0; i < bc.Triggers; i++ {
		for _, event := range events {
			if _, err := obs.TriggerAsync(ctx, event, runID, bc.Payload); err != nil {
				return fmt.Errorf("async trigger %s: %w", event, err)
			}
		}
	}

	if err := waitWithTimeout(&wg, asyncDrainTimeout); err != nil {
		return err
	}
	elapsed := time.Since(start)

	printBenchSummary(out, benchResult{
		RunID:         runID,
		Events:        bc.Events,
		SyncHandlers:  bc.SyncHandlers,
		AsyncHandlers: bc.AsyncHandlers,
		Triggers:      bc.Triggers,
		SyncCalls:     syncCalls.Load(),
		AsyncCalls:    asyncCalls.Load(),
		PayloadTotal:  payloadTotal.Load(),
		Elapsed:       elapsed,
	})
	return nil
}

func waitWithTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.New("timed out waiting for fire-and-forget handlers to drain")
	}
}

func printBenchSummary(out io.Writer, res benchResult) {
	row := func(label string, value any) {
		fmt.Fprintf(out, "  %s %s\n",
			benchLabelStyle.Render(fmt.Sprintf("%-18s", label+":")),
			benchValueStyle.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(out, benchTitleStyle.Render("Bench summary"))
	row("Run ID", res.RunID)
	row("Events", res.Events)
	row("Handlers/event", fmt.Sprintf("%d sync, %d async", res.SyncHandlers, res.AsyncHandlers))
	row("Triggers/event", fmt.Sprintf("%d per mode", res.Triggers))
	row("Sync calls", res.SyncCalls)
	row("Async calls", res.AsyncCalls)
	row("Payload total", res.PayloadTotal)
	row("Elapsed", res.Elapsed.Round(time.Microsecond))

	totalTriggers := 2 * res.Events * res.Triggers
	if res.Elapsed > 0 {
		rate := float64(totalTriggers) / res.Elapsed.Seconds()
		row("Triggers/sec", fmt.Sprintf("%.0f", rate))
	}

	color.New(color.FgGreen).Fprintf(out, "✓ Completed %d trigger calls\n", totalTriggers)
}
