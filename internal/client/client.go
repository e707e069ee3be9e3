package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/caiyueliang/client/internal/protocol"
	"github.com/caiyueliang/client/internal/tensor"
	"github.com/caiyueliang/client/pb"
)

// Result is one successfully completed inference delivered to the
// stream callback.
type Result struct {
	RequestID     string
	CorrelationID string
	Index         int
	ModelName     string
	Value         int32
}

// Callback is invoked once per received result or error. Exactly one
// of result and err is set. Server-side per-request failures and
// transport failures both arrive as errors.
type Callback func(result *Result, err error)

// Client provides streaming access to a sequence inference server.
// A single persistent bidirectional stream is shared by all sequences
// sent through the client.
type Client struct {
	conn   *grpc.ClientConn
	rpc    pb.SequenceInferenceClient
	logger *slog.Logger

	mu           sync.RWMutex
	stream       pb.SequenceInference_StreamInferClient
	streamCancel context.CancelFunc
	recvDone     chan struct{}
	stopping     bool

	// Statistics
	requestsSent    uint64
	resultsReceived uint64
	errorsReceived  uint64
}

// Stats represents client statistics
type Stats struct {
	RequestsSent    uint64 `json:"requests_sent"`
	ResultsReceived uint64 `json:"results_received"`
	ErrorsReceived  uint64 `json:"errors_received"`
}

// New dials the inference server at the given address. The connection
// is plaintext; the inference endpoint is assumed to sit inside the
// deployment boundary.
func New(url string, logger *slog.Logger) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}

	conn, err := grpc.Dial(url, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	return &Client{
		conn:   conn,
		rpc:    pb.NewSequenceInferenceClient(conn),
		logger: logger,
	}, nil
}

// StartStream opens the persistent inference stream and registers the
// asynchronous result callback. A streamTimeout of zero or less means
// no deadline on the stream.
func (c *Client) StartStream(ctx context.Context, callback Callback, streamTimeout time.Duration) error {
	if callback == nil {
		return fmt.Errorf("callback cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return fmt.Errorf("stream already started")
	}

	var streamCtx context.Context
	var cancel context.CancelFunc
	if streamTimeout > 0 {
		streamCtx, cancel = context.WithTimeout(ctx, streamTimeout)
	} else {
		streamCtx, cancel = context.WithCancel(ctx)
	}

	stream, err := c.rpc.StreamInfer(streamCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open inference stream: %w", err)
	}

	c.stream = stream
	c.streamCancel = cancel
	c.recvDone = make(chan struct{})
	c.stopping = false

	go c.recvLoop(stream, callback, c.recvDone)

	c.logger.Debug("Inference stream opened",
		slog.Duration("stream_timeout", streamTimeout),
	)

	return nil
}

// AsyncStreamInfer writes one request to the stream. The write is
// synchronous; the result arrives later through the stream callback.
// There are no retries: any failure is returned to the caller.
func (c *Client) AsyncStreamInfer(req *pb.ModelInferRequest) error {
	if err := protocol.ValidateRequest(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	c.mu.RLock()
	stream := c.stream
	c.mu.RUnlock()

	if stream == nil {
		return fmt.Errorf("stream not started")
	}

	if err := stream.Send(req); err != nil {
		return fmt.Errorf("failed to send request %s: %w", req.GetId(), err)
	}

	c.mu.Lock()
	c.requestsSent++
	c.mu.Unlock()

	controls := protocol.Controls(req)
	c.logger.Debug("Sent inference request",
		slog.String("model_name", req.GetModelName()),
		slog.String("request_id", req.GetId()),
		slog.String("correlation_id", controls.CorrelationID),
		slog.Bool("sequence_start", controls.Start),
		slog.Bool("sequence_end", controls.End),
	)

	return nil
}

// recvLoop delivers stream responses to the callback until the stream
// terminates.
func (c *Client) recvLoop(stream pb.SequenceInference_StreamInferClient, callback Callback, done chan struct{}) {
	defer close(done)

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			c.logger.Debug("Inference stream closed by server")
			return
		}
		if err != nil {
			c.mu.RLock()
			stopping := c.stopping
			c.mu.RUnlock()

			if !stopping {
				callback(nil, fmt.Errorf("stream receive failed: %w", err))
			}
			return
		}

		if msg := resp.GetErrorMessage(); msg != "" {
			c.mu.Lock()
			c.errorsReceived++
			c.mu.Unlock()

			callback(nil, fmt.Errorf("inference failed: %s", msg))
			continue
		}

		result, err := parseResult(resp.GetInferResponse())
		if err != nil {
			c.mu.Lock()
			c.errorsReceived++
			c.mu.Unlock()

			callback(nil, err)
			continue
		}

		c.mu.Lock()
		c.resultsReceived++
		c.mu.Unlock()

		c.logger.Debug("Received inference result",
			slog.String("request_id", result.RequestID),
			slog.String("correlation_id", result.CorrelationID),
			slog.Int("index", result.Index),
			slog.Int("value", int(result.Value)),
		)

		callback(result, nil)
	}
}

// parseResult converts a wire response into a Result
func parseResult(resp *pb.ModelInferResponse) (*Result, error) {
	if resp == nil {
		return nil, fmt.Errorf("empty inference response")
	}

	correlationID, index, err := protocol.ParseRequestID(resp.GetId())
	if err != nil {
		return nil, fmt.Errorf("bad response id: %w", err)
	}

	output, err := tensor.Named(resp.GetOutputs(), protocol.OutputTensorName)
	if err != nil {
		return nil, fmt.Errorf("bad response %s: %w", resp.GetId(), err)
	}

	value, err := tensor.Int32Value(output)
	if err != nil {
		return nil, fmt.Errorf("bad response %s: %w", resp.GetId(), err)
	}

	return &Result{
		RequestID:     resp.GetId(),
		CorrelationID: correlationID,
		Index:         index,
		ModelName:     resp.GetModelName(),
		Value:         value,
	}, nil
}

// StopStream half-closes the stream and waits for the server to drain
// outstanding responses.
func (c *Client) StopStream() error {
	c.mu.Lock()
	stream := c.stream
	cancel := c.streamCancel
	recvDone := c.recvDone
	c.stream = nil
	c.streamCancel = nil
	c.stopping = true
	c.mu.Unlock()

	if stream == nil {
		return nil
	}

	err := stream.CloseSend()
	<-recvDone
	cancel()

	if err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}

	return nil
}

// GetStats returns current client statistics
func (c *Client) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		RequestsSent:    c.requestsSent,
		ResultsReceived: c.resultsReceived,
		ErrorsReceived:  c.errorsReceived,
	}
}

// Close stops the stream if it is still open and releases the
// connection. Safe to call on all exit paths.
func (c *Client) Close() error {
	if err := c.StopStream(); err != nil {
		c.logger.Warn("Error stopping stream during close", slog.String("error", err.Error()))
	}

	return c.conn.Close()
}
