// Package client implements the streaming gRPC client for the sequence
// inference service: one persistent bidirectional stream shared by all
// sequences, synchronous sends and callback-driven asynchronous result
// delivery.
package client
