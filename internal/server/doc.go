// Package server hosts the two network surfaces of the sequence
// inference service: the gRPC streaming inference endpoint and the
// monitoring HTTP API with health, status and Prometheus metrics.
package server
