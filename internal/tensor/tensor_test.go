package tensor

import (
	"testing"

	"github.com/caiyueliang/client/pb"
)

func TestNewInt32RoundTrip(t *testing.T) {
	tensor := NewInt32("OUTPUT", -42)

	if tensor.GetName() != "OUTPUT" {
		t.Errorf("name = %q, want OUTPUT", tensor.GetName())
	}
	if len(tensor.GetShape()) != 2 || tensor.GetShape()[0] != 1 || tensor.GetShape()[1] != 1 {
		t.Errorf("shape = %v, want [1 1]", tensor.GetShape())
	}

	value, err := Int32Value(tensor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != -42 {
		t.Errorf("value = %d, want -42", value)
	}
}

func TestInt32ValueErrors(t *testing.T) {
	tests := []struct {
		name   string
		tensor *pb.InferTensor
	}{
		{"nil tensor", nil},
		{"wrong datatype", &pb.InferTensor{Name: "INPUT", Datatype: "FP32"}},
		{"no contents", &pb.InferTensor{Name: "INPUT", Datatype: "INT32"}},
		{"multiple values", &pb.InferTensor{
			Name:     "INPUT",
			Datatype: "INT32",
			Contents: &pb.InferTensorContents{IntContents: []int32{1, 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Int32Value(tt.tensor); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNamed(t *testing.T) {
	tensors := []*pb.InferTensor{
		NewInt32("INPUT", 1),
		NewInt32("OUTPUT", 2),
	}

	found, err := Named(tensors, "OUTPUT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.GetName() != "OUTPUT" {
		t.Errorf("found tensor %q, want OUTPUT", found.GetName())
	}

	if _, err := Named(tensors, "MISSING"); err == nil {
		t.Error("expected error for missing tensor, got nil")
	}
}
