package server

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"

	"github.com/caiyueliang/client/internal/config"
	"github.com/caiyueliang/client/internal/metrics"
	"github.com/caiyueliang/client/internal/protocol"
	"github.com/caiyueliang/client/internal/sequence"
	"github.com/caiyueliang/client/internal/tensor"
	"github.com/caiyueliang/client/pb"
)

// GRPCServer serves the SequenceInference streaming API. Requests on a
// stream are processed in arrival order, which preserves per-sequence
// response ordering; interleaving across sequences is whatever the
// senders produce.
type GRPCServer struct {
	pb.UnimplementedSequenceInferenceServer

	logger   *slog.Logger
	registry *sequence.Registry
	manager  *sequence.Manager
	metrics  *metrics.Metrics

	addr       string
	maxStreams uint32
	grpcServer *grpc.Server
	listener   net.Listener
}

// NewGRPCServer creates the inference gRPC server. The metrics sink
// may be nil.
func NewGRPCServer(cfg *config.ServerConfig, logger *slog.Logger,
	registry *sequence.Registry, manager *sequence.Manager, m *metrics.Metrics) *GRPCServer {

	return &GRPCServer{
		logger:     logger,
		registry:   registry,
		manager:    manager,
		metrics:    m,
		addr:       fmt.Sprintf("%s:%d", cfg.BindAddress, cfg.GRPCPort),
		maxStreams: uint32(cfg.MaxConcurrentStreams),
	}
}

// Start begins listening and serving in a background goroutine
func (s *GRPCServer) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.listener = listener
	s.grpcServer = grpc.NewServer(grpc.MaxConcurrentStreams(s.maxStreams))
	pb.RegisterSequenceInferenceServer(s.grpcServer, s)

	s.logger.Info("Starting gRPC inference server",
		slog.String("address", listener.Addr().String()),
		slog.Uint64("max_concurrent_streams", uint64(s.maxStreams)),
	)

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			s.logger.Error("gRPC server error", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Addr returns the actual listen address (useful when the configured
// port is 0)
func (s *GRPCServer) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully stops the server, letting in-flight streams drain
func (s *GRPCServer) Stop() {
	if s.grpcServer == nil {
		return
	}

	s.logger.Info("Stopping gRPC inference server...")
	s.grpcServer.GracefulStop()
}

// Register registers the inference service on an externally managed
// grpc.Server (used by tests running over bufconn).
func (s *GRPCServer) Register(gs *grpc.Server) {
	pb.RegisterSequenceInferenceServer(gs, s)
}

// StreamInfer implements the bidirectional inference stream. Requests
// that fail validation or sequence bookkeeping produce error_message
// responses; the stream itself stays open until the client half-closes
// or the transport fails.
func (s *GRPCServer) StreamInfer(stream pb.SequenceInference_StreamInferServer) error {
	if s.metrics != nil {
		s.metrics.RecordStreamOpened()
		defer s.metrics.RecordStreamClosed()
	}

	s.logger.Debug("Inference stream opened")

	for {
		req, err := stream.Recv()
		if err == io.EOF {
			s.logger.Debug("Inference stream half-closed by client")
			return nil
		}
		if err != nil {
			s.logger.Warn("Inference stream receive failed", slog.String("error", err.Error()))
			return err
		}

		start := time.Now()
		if s.metrics != nil {
			s.metrics.RecordRequestReceived()
		}

		resp, err := s.handleRequest(req)
		if err != nil {
			s.logger.Warn("Inference request failed",
				slog.String("model_name", req.GetModelName()),
				slog.String("request_id", req.GetId()),
				slog.String("error", err.Error()),
			)

			if s.metrics != nil {
				s.metrics.RecordInferError()
			}

			if sendErr := stream.Send(&pb.ModelStreamInferResponse{ErrorMessage: err.Error()}); sendErr != nil {
				return sendErr
			}
			continue
		}

		if err := stream.Send(&pb.ModelStreamInferResponse{InferResponse: resp}); err != nil {
			return err
		}

		if s.metrics != nil {
			s.metrics.RecordResponseSent(time.Since(start).Seconds())
		}
	}
}

// handleRequest validates one request and applies it to the sequence
// state.
func (s *GRPCServer) handleRequest(req *pb.ModelInferRequest) (*pb.ModelInferResponse, error) {
	if err := protocol.ValidateRequest(req); err != nil {
		return nil, err
	}

	model, ok := s.registry.Lookup(req.GetModelName())
	if !ok {
		return nil, fmt.Errorf("unknown model %q", req.GetModelName())
	}

	value, err := tensor.Int32Value(req.GetInputs()[0])
	if err != nil {
		return nil, err
	}

	output, err := s.manager.Apply(model, protocol.Controls(req), value)
	if err != nil {
		return nil, err
	}

	return &pb.ModelInferResponse{
		ModelName: req.GetModelName(),
		Id:        req.GetId(),
		Outputs: []*pb.InferTensor{
			tensor.NewInt32(protocol.OutputTensorName, output),
		},
	}, nil
}
