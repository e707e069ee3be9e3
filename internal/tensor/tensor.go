package tensor

import (
	"fmt"

	"github.com/caiyueliang/client/pb"
)

// NewInt32 builds a [1,1] INT32 tensor holding a single scalar value.
func NewInt32(name string, value int32) *pb.InferTensor {
	return &pb.InferTensor{
		Name:     name,
		Datatype: "INT32",
		Shape:    []int64{1, 1},
		Contents: &pb.InferTensorContents{IntContents: []int32{value}},
	}
}

// Int32Value extracts the scalar value from a [1,1] INT32 tensor.
func Int32Value(t *pb.InferTensor) (int32, error) {
	if t == nil {
		return 0, fmt.Errorf("tensor is nil")
	}

	if t.GetDatatype() != "INT32" {
		return 0, fmt.Errorf("tensor %q has datatype %q, want INT32", t.GetName(), t.GetDatatype())
	}

	contents := t.GetContents().GetIntContents()
	if len(contents) != 1 {
		return 0, fmt.Errorf("tensor %q holds %d values, want 1", t.GetName(), len(contents))
	}

	return contents[0], nil
}

// Named finds a tensor by name in a tensor list.
func Named(tensors []*pb.InferTensor, name string) (*pb.InferTensor, error) {
	for _, t := range tensors {
		if t.GetName() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("tensor %q not found", name)
}
