package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/observekit/observable/pkg/config"
)

func TestRunBench(t *testing.T) {
	buf := &bytes.Buffer{}
	bc := config.BenchConfig{
		Events:        2,
		SyncHandlers:  1,
		AsyncHandlers: 1,
		Triggers:      3,
		Payload:       "1",
	}

	err := runBench(context.Background(), buf, bc, config.LogConfig{Level: "error"})
	if err != nil {
		t.Fatalf("bench run failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Bench summary") {
		t.Errorf("missing summary header in output:\n%s", out)
	}
	// 2 events x 3 triggers x 2 modes.
	if !strings.Contains(out, "Completed 12 trigger calls") {
		t.Errorf("unexpected trigger count in output:\n%s", out)
	}
}

func TestBenchCommandThroughCLI(t *testing.T) {
	cmd := NewCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"bench",
		"--bench.events=1",
		"--bench.sync_handlers=1",
		"--bench.async_handlers=0",
		"--bench.triggers=2",
		"--log.level=error",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Bench summary") {
		t.Errorf("missing summary header in output:\n%s", buf.String())
	}
}
