package sequence

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/caiyueliang/client/internal/protocol"
)

func newTestManager(t *testing.T, config ManagerConfig) *Manager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	mgr := NewManager(logger, config, nil)
	t.Cleanup(mgr.Stop)

	return mgr
}

func defaultTestConfig() ManagerConfig {
	return ManagerConfig{
		IdleTimeout:     time.Minute,
		CleanupInterval: time.Second,
		MaxActive:       64,
	}
}

// apply is a shorthand for sending one request through the manager
func apply(t *testing.T, mgr *Manager, model Model, id string, start, end bool, value int32) int32 {
	t.Helper()

	output, err := mgr.Apply(model, protocol.SequenceControls{
		CorrelationID: id,
		Start:         start,
		End:           end,
	}, value)
	if err != nil {
		t.Fatalf("Apply(%s, start=%t, end=%t, %d) failed: %v", id, start, end, value, err)
	}

	return output
}

func TestApplyRunningSum(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	values := []int32{0, 11, 7, 5, 3, 2, 0, 1, 19}
	expected := []int32{0, 11, 18, 23, 26, 28, 28, 29, 48}

	for i, v := range values {
		output := apply(t, mgr, model, "1000", i == 0, i == len(values)-1, v)
		if output != expected[i] {
			t.Errorf("request %d: output = %d, want %d", i+1, output, expected[i])
		}
	}

	if mgr.ActiveCount() != 0 {
		t.Errorf("expected 0 active sequences after end, got %d", mgr.ActiveCount())
	}
}

func TestApplyFoldsCorrelationID(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleDynaSequenceModel, FoldCorrelationID: true}

	if output := apply(t, mgr, model, "1002", true, false, 20); output != 20 {
		t.Errorf("first output = %d, want 20", output)
	}

	// Terminal request: accumulator 20-11=9 plus the folded id 1002
	if output := apply(t, mgr, model, "1002", false, true, -11); output != 1011 {
		t.Errorf("terminal output = %d, want 1011", output)
	}
}

func TestApplyNegativeCorrelationIDFold(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleDynaSequenceModel, FoldCorrelationID: true}

	if output := apply(t, mgr, model, "-5", true, true, 10); output != 5 {
		t.Errorf("output = %d, want 5", output)
	}
}

func TestApplyFoldRejectsNonNumericID(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleStringDynaSequenceModel, FoldCorrelationID: true}

	apply(t, mgr, model, "not-a-number", true, false, 1)

	_, err := mgr.Apply(model, protocol.SequenceControls{
		CorrelationID: "not-a-number",
		End:           true,
	}, 2)
	if err == nil {
		t.Fatal("expected error for non-numeric correlation id, got nil")
	}
	if !strings.Contains(err.Error(), "integer correlation id") {
		t.Errorf("error %q does not mention the correlation id requirement", err.Error())
	}
}

func TestApplyWithoutStart(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	_, err := mgr.Apply(model, protocol.SequenceControls{CorrelationID: "9999"}, 1)
	if err == nil {
		t.Fatal("expected error for unknown sequence, got nil")
	}
	if !strings.Contains(err.Error(), "no active sequence") {
		t.Errorf("error %q does not mention the missing sequence", err.Error())
	}
}

func TestApplyRestartResetsAccumulator(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	apply(t, mgr, model, "1000", true, false, 100)

	// A second start for the same id discards the old state
	if output := apply(t, mgr, model, "1000", true, false, 7); output != 7 {
		t.Errorf("output after restart = %d, want 7", output)
	}

	if mgr.ActiveCount() != 1 {
		t.Errorf("expected 1 active sequence, got %d", mgr.ActiveCount())
	}
}

func TestApplyEndRemovesState(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	apply(t, mgr, model, "1000", true, true, 1)

	// The id is gone; continuing the sequence must fail
	if _, err := mgr.Apply(model, protocol.SequenceControls{CorrelationID: "1000"}, 2); err == nil {
		t.Error("expected error after sequence end, got nil")
	}
}

func TestApplyMaxActiveLimit(t *testing.T) {
	config := defaultTestConfig()
	config.MaxActive = 1
	mgr := newTestManager(t, config)
	model := Model{Name: SimpleSequenceModel}

	apply(t, mgr, model, "1000", true, false, 1)

	_, err := mgr.Apply(model, protocol.SequenceControls{CorrelationID: "1001", Start: true}, 1)
	if err == nil {
		t.Fatal("expected error at the active sequence limit, got nil")
	}
	if !strings.Contains(err.Error(), "too many active sequences") {
		t.Errorf("error %q does not mention the limit", err.Error())
	}

	// Restarting the existing sequence is still allowed at the limit
	apply(t, mgr, model, "1000", true, false, 1)
}

func TestApplyInterleavedSequences(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	// Interleave requests from three sequences; accumulators stay independent
	apply(t, mgr, model, "1000", true, false, 1)
	apply(t, mgr, model, "1001", true, false, 10)
	apply(t, mgr, model, "abc", true, false, 100)

	if output := apply(t, mgr, model, "1000", false, false, 2); output != 3 {
		t.Errorf("sequence 1000 output = %d, want 3", output)
	}
	if output := apply(t, mgr, model, "abc", false, false, 200); output != 300 {
		t.Errorf("sequence abc output = %d, want 300", output)
	}
	if output := apply(t, mgr, model, "1001", false, true, 20); output != 30 {
		t.Errorf("sequence 1001 output = %d, want 30", output)
	}

	if mgr.ActiveCount() != 2 {
		t.Errorf("expected 2 active sequences, got %d", mgr.ActiveCount())
	}
}

func TestSnapshot(t *testing.T) {
	mgr := newTestManager(t, defaultTestConfig())
	model := Model{Name: SimpleSequenceModel}

	apply(t, mgr, model, "1000", true, false, 5)
	apply(t, mgr, model, "1000", false, false, 7)

	infos := mgr.Snapshot()
	if len(infos) != 1 {
		t.Fatalf("expected 1 snapshot entry, got %d", len(infos))
	}

	info := infos[0]
	if info.CorrelationID != "1000" {
		t.Errorf("correlation id = %q, want 1000", info.CorrelationID)
	}
	if info.ModelName != SimpleSequenceModel {
		t.Errorf("model name = %q, want %q", info.ModelName, SimpleSequenceModel)
	}
	if info.Accumulator != 12 {
		t.Errorf("accumulator = %d, want 12", info.Accumulator)
	}
	if info.Requests != 2 {
		t.Errorf("requests = %d, want 2", info.Requests)
	}
}

func TestExpireIdleSequences(t *testing.T) {
	config := ManagerConfig{
		IdleTimeout:     20 * time.Millisecond,
		CleanupInterval: 10 * time.Millisecond,
		MaxActive:       64,
	}
	mgr := newTestManager(t, config)
	model := Model{Name: SimpleSequenceModel}

	apply(t, mgr, model, "1000", true, false, 1)

	deadline := time.Now().Add(2 * time.Second)
	for mgr.ActiveCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("idle sequence was not expired, %d still active", mgr.ActiveCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStopDiscardsState(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	mgr := NewManager(logger, defaultTestConfig(), nil)
	model := Model{Name: SimpleSequenceModel}

	if _, err := mgr.Apply(model, protocol.SequenceControls{CorrelationID: "1000", Start: true}, 1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	mgr.Stop()

	if mgr.ActiveCount() != 0 {
		t.Errorf("expected 0 active sequences after Stop, got %d", mgr.ActiveCount())
	}
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(DefaultModels())

	model, ok := registry.Lookup(SimpleDynaSequenceModel)
	if !ok {
		t.Fatalf("model %q not found", SimpleDynaSequenceModel)
	}
	if !model.FoldCorrelationID {
		t.Errorf("model %q should fold the correlation id", SimpleDynaSequenceModel)
	}

	model, ok = registry.Lookup(SimpleSequenceModel)
	if !ok {
		t.Fatalf("model %q not found", SimpleSequenceModel)
	}
	if model.FoldCorrelationID {
		t.Errorf("model %q should not fold the correlation id", SimpleSequenceModel)
	}

	if _, ok := registry.Lookup("unknown"); ok {
		t.Error("lookup of unknown model should fail")
	}

	if got := len(registry.Names()); got != 3 {
		t.Errorf("expected 3 registered models, got %d", got)
	}
}
