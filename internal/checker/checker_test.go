package checker

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/caiyueliang/client/internal/config"
	"github.com/caiyueliang/client/internal/sequence"
	"github.com/caiyueliang/client/internal/server"
)

// startTestServer runs a real inference server on a loopback port and
// returns its address.
func startTestServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	manager := sequence.NewManager(logger, sequence.ManagerConfig{
		IdleTimeout:     time.Minute,
		CleanupInterval: time.Second,
		MaxActive:       64,
	}, nil)

	registry := sequence.NewRegistry(sequence.DefaultModels())

	srv := server.NewGRPCServer(&config.ServerConfig{
		GRPCPort:             0,
		BindAddress:          "127.0.0.1",
		MaxConcurrentStreams: 16,
	}, logger, registry, manager, nil)

	if err := srv.Start(); err != nil {
		t.Fatalf("failed to start test server: %v", err)
	}

	t.Cleanup(func() {
		srv.Stop()
		manager.Stop()
	})

	return srv.Addr()
}

func newTestRunner(out *bytes.Buffer) *Runner {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRunner(logger, out)
}

func TestRunEndToEnd(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	err := runner.Run(context.Background(), Options{URL: addr})
	if err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}

	// 27 request lines plus 9 validation lines
	if got := strings.Count(out.String(), "[input_value]"); got != 27 {
		t.Errorf("expected 27 request lines, got %d", got)
	}
	if !strings.Contains(out.String(), "[8] 48 : 52 : -28") {
		t.Errorf("terminal validation line missing from output:\n%s", out.String())
	}
}

func TestRunEndToEndDyna(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	err := runner.Run(context.Background(), Options{URL: addr, Dyna: true})
	if err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}

	if !strings.Contains(out.String(), "[8] 1048 : 1053 : 974") {
		t.Errorf("terminal validation line missing from output:\n%s", out.String())
	}
}

func TestRunEndToEndWithOffset(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	if err := runner.Run(context.Background(), Options{URL: addr, Dyna: true, Offset: 3}); err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}

	if !strings.Contains(out.String(), "[sequence_id] 1006") {
		t.Errorf("offset sequence id missing from output:\n%s", out.String())
	}
}

func TestRunWithStreamTimeout(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	// Generous timeout; the run completes well within it
	if err := runner.Run(context.Background(), Options{URL: addr, StreamTimeout: 30 * time.Second}); err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}
}

func TestRunUnknownModel(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	err := runner.Run(context.Background(), Options{URL: addr, ModelName: "no_such_model"})
	if err == nil {
		t.Fatal("expected error for unknown model, got nil")
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("error %q does not mention the unknown model", err.Error())
	}
}

func TestRunDynaAgainstNonFoldingModel(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	// The expectation table folds correlation ids but the overridden
	// model does not, so the terminal results mismatch.
	err := runner.Run(context.Background(), Options{URL: addr, Dyna: true, ModelName: sequence.SimpleSequenceModel})
	if err == nil {
		t.Fatal("expected validation mismatch, got nil")
	}
	if !strings.Contains(err.Error(), "expected") {
		t.Errorf("error %q does not look like a validation mismatch", err.Error())
	}
	if !strings.Contains(out.String(), "[ expected ]") {
		t.Errorf("expected-values line missing from output:\n%s", out.String())
	}
}

func TestRunCancelledContext(t *testing.T) {
	addr := startTestServer(t)

	var out bytes.Buffer
	runner := newTestRunner(&out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Run(ctx, Options{URL: addr}); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}
