// Package tensor provides helpers for building and reading the scalar
// INT32 tensors exchanged with the sequence models.
package tensor
