// Package checker implements the sequence conformance run: three
// interleaved sequences sent asynchronously over one inference stream,
// results collected through a callback-driven queue and validated
// against locally computed running accumulations.
package checker
