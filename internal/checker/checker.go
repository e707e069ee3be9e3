package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caiyueliang/client/internal/client"
	"github.com/caiyueliang/client/internal/protocol"
)

// Options controls one conformance run.
type Options struct {
	URL           string
	StreamTimeout time.Duration
	Dyna          bool
	Offset        int
	ModelName     string
}

// Runner drives the sequence conformance check: it sends three
// interleaved sequences over one stream, collects results through the
// client callback and validates every received value against the
// locally computed expectation table. The run is single-shot; the
// first transport error, server error or mismatch is fatal.
type Runner struct {
	logger *slog.Logger
	out    io.Writer
}

// completion is one callback delivery handed to the collecting loop
type completion struct {
	result *client.Result
	err    error
}

// NewRunner creates a runner writing its per-request and per-result
// logs to out.
func NewRunner(logger *slog.Logger, out io.Writer) *Runner {
	return &Runner{logger: logger, out: out}
}

// Run executes the conformance check and returns nil only if every
// result matched its expectation.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	plan, err := BuildPlan(opts.Dyna, opts.Offset, opts.ModelName)
	if err != nil {
		return err
	}

	cl, err := client.New(opts.URL, r.logger)
	if err != nil {
		return err
	}
	defer cl.Close()

	// Callback context: push every completion onto the queue. The
	// buffer holds the full run so the callback never blocks.
	queue := make(chan completion, plan.Total())
	callback := func(result *client.Result, err error) {
		queue <- completion{result: result, err: err}
	}

	if err := cl.StartStream(ctx, callback, opts.StreamTimeout); err != nil {
		return err
	}

	for _, seq := range plan.Sequences {
		if err := r.sendSequence(cl, seq); err != nil {
			return err
		}
	}

	received, err := r.collect(ctx, plan, queue)
	if err != nil {
		return err
	}

	if err := cl.StopStream(); err != nil {
		r.logger.Warn("Error closing stream", slog.String("error", err.Error()))
	}

	return r.validate(plan, received)
}

// sendSequence emits one request per value, with sequence_start on the
// first and sequence_end on the last. Request indices are 1-based.
func (r *Runner) sendSequence(cl *client.Client, seq Sequence) error {
	for i, value := range seq.Values {
		controls := protocol.SequenceControls{
			CorrelationID: seq.CorrelationID,
			Start:         i == 0,
			End:           i == len(seq.Values)-1,
		}

		req := protocol.NewInferRequest(seq.ModelName, controls, i+1, value)
		if err := cl.AsyncStreamInfer(req); err != nil {
			return err
		}

		fmt.Fprintf(r.out, "[model_name] %s, [sequence_id] %s, [start:%t|end:%t], [input_value] %d\n",
			seq.ModelName, seq.CorrelationID, controls.Start, controls.End, value)
	}

	return nil
}

// collect blocks until every expected result has arrived,
// demultiplexing by correlation id. Any error completion aborts the
// run immediately.
func (r *Runner) collect(ctx context.Context, plan *Plan, queue <-chan completion) ([][]int32, error) {
	received := make([][]int32, len(plan.Sequences))

	for count := 0; count < plan.Total(); count++ {
		var item completion
		select {
		case item = <-queue:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		if item.err != nil {
			return nil, item.err
		}

		pos := plan.IndexOf(item.result.CorrelationID)
		if pos < 0 {
			return nil, fmt.Errorf("unexpected sequence id returned by the server: %s", item.result.CorrelationID)
		}

		if want := len(received[pos]) + 1; item.result.Index != want {
			return nil, fmt.Errorf("sequence %s: result index %d arrived out of order, want %d",
				item.result.CorrelationID, item.result.Index, want)
		}

		if item.result.Index > len(plan.Sequences[pos].Values) {
			return nil, fmt.Errorf("sequence %s: result index %d exceeds the %d requests sent",
				item.result.CorrelationID, item.result.Index, len(plan.Sequences[pos].Values))
		}

		received[pos] = append(received[pos], item.result.Value)
	}

	return received, nil
}

// validate compares every received value against the expectation table
func (r *Runner) validate(plan *Plan, received [][]int32) error {
	for i := 0; i < len(plan.Sequences[0].Expected); i++ {
		fmt.Fprintf(r.out, "[%d] %d : %d : %d\n", i,
			received[0][i], received[1][i], received[2][i])

		for j, seq := range plan.Sequences {
			if received[j][i] != seq.Expected[i] {
				fmt.Fprintf(r.out, "[ expected ] %d : %d : %d\n",
					plan.Sequences[0].Expected[i],
					plan.Sequences[1].Expected[i],
					plan.Sequences[2].Expected[i])
				return fmt.Errorf("sequence %s: position %d: got %d, expected %d",
					seq.CorrelationID, i, received[j][i], seq.Expected[i])
			}
		}
	}

	return nil
}
