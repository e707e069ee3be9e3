// Package sequence implements the server-side state for stateful
// "sequence" model inference: per-correlation-id accumulators created
// by sequence_start, advanced by every request in arrival order,
// removed by sequence_end and expired after an inactivity timeout.
package sequence
