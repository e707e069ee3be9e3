package sequence

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/caiyueliang/client/internal/metrics"
	"github.com/caiyueliang/client/internal/protocol"
)

// State holds the server-side accumulator for one active sequence.
type State struct {
	CorrelationID string
	ModelName     string
	Accumulator   int32
	Requests      uint64
	StartTime     time.Time
	LastActivity  time.Time
}

// ManagerConfig contains configuration for the sequence state manager
type ManagerConfig struct {
	IdleTimeout     time.Duration
	CleanupInterval time.Duration
	MaxActive       int
}

// Manager tracks all active sequences keyed by correlation id. Requests
// within a sequence are applied in arrival order; the accumulator is
// the running sum of all input values seen so far.
type Manager struct {
	states map[string]*State
	mu     sync.RWMutex
	logger *slog.Logger
	config ManagerConfig

	// Optional metrics sink, may be nil in tests
	metrics *metrics.Metrics

	// Cleanup management
	ctx     context.Context
	cancel  context.CancelFunc
	cleanup chan struct{}
}

// NewManager creates a new sequence state manager and starts its
// background cleanup routine.
func NewManager(logger *slog.Logger, config ManagerConfig, m *metrics.Metrics) *Manager {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 10 * time.Second
	}
	if config.MaxActive <= 0 {
		config.MaxActive = 1024
	}

	ctx, cancel := context.WithCancel(context.Background())

	mgr := &Manager{
		states:  make(map[string]*State),
		logger:  logger,
		config:  config,
		metrics: m,
		ctx:     ctx,
		cancel:  cancel,
		cleanup: make(chan struct{}),
	}

	go mgr.startCleanupRoutine()

	return mgr
}

// Apply processes one sequence request and returns the output value:
// the running accumulation of inputs, with the correlation id folded in
// on the terminal request when the model asks for it.
func (m *Manager) Apply(model Model, controls protocol.SequenceControls, value int32) (int32, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.states[controls.CorrelationID]

	if controls.Start {
		if exists {
			m.logger.Warn("Restarting already-active sequence",
				slog.String("correlation_id", controls.CorrelationID),
				slog.Uint64("discarded_requests", state.Requests),
			)
		} else if len(m.states) >= m.config.MaxActive {
			return 0, fmt.Errorf("too many active sequences: limit %d reached", m.config.MaxActive)
		}

		state = &State{
			CorrelationID: controls.CorrelationID,
			ModelName:     model.Name,
			StartTime:     now,
		}
		m.states[controls.CorrelationID] = state

		if m.metrics != nil {
			m.metrics.RecordSequenceStarted()
			m.metrics.SetActiveSequences(len(m.states))
		}
	} else if !exists {
		return 0, fmt.Errorf("no active sequence with correlation id %q: first request must set %s", controls.CorrelationID, protocol.ParamSequenceStart)
	}

	state.Accumulator += value
	state.Requests++
	state.LastActivity = now

	output := state.Accumulator

	if controls.End {
		delete(m.states, controls.CorrelationID)

		if m.metrics != nil {
			m.metrics.RecordSequenceCompleted(now.Sub(state.StartTime).Seconds())
			m.metrics.RecordSequenceLength(state.Requests)
			m.metrics.SetActiveSequences(len(m.states))
		}

		if model.FoldCorrelationID {
			id, err := strconv.ParseInt(controls.CorrelationID, 10, 32)
			if err != nil {
				return 0, fmt.Errorf("model %q requires an integer correlation id, got %q", model.Name, controls.CorrelationID)
			}
			output += int32(id)
		}
	}

	return output, nil
}

// ActiveCount returns the number of currently active sequences
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}

// Snapshot returns a copy of all active sequence states (for monitoring)
func (m *Manager) Snapshot() []SequenceInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SequenceInfo, 0, len(m.states))
	for _, state := range m.states {
		infos = append(infos, SequenceInfo{
			CorrelationID: state.CorrelationID,
			ModelName:     state.ModelName,
			Accumulator:   state.Accumulator,
			Requests:      state.Requests,
			StartTime:     state.StartTime,
			LastActivity:  state.LastActivity,
			Duration:      time.Since(state.StartTime),
		})
	}

	return infos
}

// SequenceInfo represents one active sequence for monitoring APIs
type SequenceInfo struct {
	CorrelationID string        `json:"correlation_id"`
	ModelName     string        `json:"model_name"`
	Accumulator   int32         `json:"accumulator"`
	Requests      uint64        `json:"requests"`
	StartTime     time.Time     `json:"start_time"`
	LastActivity  time.Time     `json:"last_activity"`
	Duration      time.Duration `json:"duration"`
}

// Stop gracefully stops the manager and its cleanup routine
func (m *Manager) Stop() {
	m.cancel()
	<-m.cleanup

	m.mu.Lock()
	remaining := len(m.states)
	m.states = make(map[string]*State)
	m.mu.Unlock()

	if remaining > 0 {
		m.logger.Info("Discarded unfinished sequences on shutdown",
			slog.Int("count", remaining),
		)
	}
}

// startCleanupRoutine runs in a separate goroutine to expire idle sequences
func (m *Manager) startCleanupRoutine() {
	defer close(m.cleanup)

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	m.logger.Info("Sequence cleanup routine started",
		slog.Duration("idle_timeout", m.config.IdleTimeout),
		slog.Duration("check_interval", m.config.CleanupInterval),
	)

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Info("Sequence cleanup routine stopping")
			return

		case <-ticker.C:
			m.expireIdleSequences()
		}
	}
}

// expireIdleSequences removes sequences that have been inactive for
// longer than the idle timeout. A sequence abandoned without its
// sequence_end request would otherwise hold state forever.
func (m *Manager) expireIdleSequences() {
	if m.config.IdleTimeout <= 0 {
		return
	}

	now := time.Now()
	expired := make([]string, 0)

	m.mu.Lock()
	for id, state := range m.states {
		if now.Sub(state.LastActivity) > m.config.IdleTimeout {
			expired = append(expired, id)
			delete(m.states, id)
		}
	}
	active := len(m.states)
	m.mu.Unlock()

	if len(expired) > 0 {
		m.logger.Info("Expired idle sequences",
			slog.Int("expired_count", len(expired)),
			slog.Int("active_count", active),
		)

		if m.metrics != nil {
			m.metrics.RecordSequencesExpired(len(expired))
			m.metrics.SetActiveSequences(active)
		}
	}
}
