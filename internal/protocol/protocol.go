package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caiyueliang/client/pb"
)

// Protocol constants for the sequence inference wire format
const (
	// Sequence control parameter names
	ParamSequenceID    = "sequence_id"
	ParamSequenceStart = "sequence_start"
	ParamSequenceEnd   = "sequence_end"

	// Tensor names used by the sequence models
	InputTensorName  = "INPUT"
	OutputTensorName = "OUTPUT"

	// Datatype accepted by the sequence models
	DatatypeInt32 = "INT32"

	// Separator between correlation id and request index in a request id
	RequestIDSeparator = "_"
)

// SequenceControls carries the sequence metadata attached to one request.
// A request with an empty CorrelationID does not belong to any sequence;
// the sequence models reject such requests.
type SequenceControls struct {
	CorrelationID string
	Start         bool
	End           bool
}

// ComposeRequestID builds the composite request identifier
// "<correlation-id>_<index>". The index is 1-based and unique within
// its sequence.
func ComposeRequestID(correlationID string, index int) string {
	return fmt.Sprintf("%s%s%d", correlationID, RequestIDSeparator, index)
}

// ParseRequestID splits a composite request identifier back into the
// correlation id and the 1-based request index. The correlation id may
// itself contain separator characters (UUIDs do not, but decimal ids
// composed with extra fields might), so the split happens on the last
// separator.
func ParseRequestID(id string) (string, int, error) {
	pos := strings.LastIndex(id, RequestIDSeparator)
	if pos <= 0 || pos == len(id)-1 {
		return "", 0, fmt.Errorf("malformed request id %q: expected <correlation-id>%s<index>", id, RequestIDSeparator)
	}

	index, err := strconv.Atoi(id[pos+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed request id %q: %w", id, err)
	}

	if index < 1 {
		return "", 0, fmt.Errorf("malformed request id %q: index must be 1-based, got %d", id, index)
	}

	return id[:pos], index, nil
}

// NewInferRequest builds a fully populated sequence inference request
// for a single scalar input value.
func NewInferRequest(modelName string, controls SequenceControls, index int, value int32) *pb.ModelInferRequest {
	return &pb.ModelInferRequest{
		ModelName: modelName,
		Id:        ComposeRequestID(controls.CorrelationID, index),
		Parameters: map[string]*pb.InferParameter{
			ParamSequenceID:    {StringParam: controls.CorrelationID},
			ParamSequenceStart: {BoolParam: controls.Start},
			ParamSequenceEnd:   {BoolParam: controls.End},
		},
		Inputs: []*pb.InferTensor{
			{
				Name:     InputTensorName,
				Datatype: DatatypeInt32,
				Shape:    []int64{1, 1},
				Contents: &pb.InferTensorContents{IntContents: []int32{value}},
			},
		},
	}
}

// Controls extracts the sequence control parameters from a request.
// Absent parameters default to the zero value, matching proto3
// semantics.
func Controls(req *pb.ModelInferRequest) SequenceControls {
	controls := SequenceControls{}
	if p, ok := req.GetParameters()[ParamSequenceID]; ok {
		controls.CorrelationID = p.GetStringParam()
	}
	if p, ok := req.GetParameters()[ParamSequenceStart]; ok {
		controls.Start = p.GetBoolParam()
	}
	if p, ok := req.GetParameters()[ParamSequenceEnd]; ok {
		controls.End = p.GetBoolParam()
	}
	return controls
}

// ValidateRequest checks that a request is well formed for the sequence
// models: a model name, a composite request id, a non-empty correlation
// id (zero is reserved for non-sequence traffic) and exactly one INT32
// input tensor named INPUT carrying a single value.
func ValidateRequest(req *pb.ModelInferRequest) error {
	if req.GetModelName() == "" {
		return fmt.Errorf("model_name cannot be empty")
	}

	if _, _, err := ParseRequestID(req.GetId()); err != nil {
		return err
	}

	controls := Controls(req)
	if controls.CorrelationID == "" || controls.CorrelationID == "0" {
		return fmt.Errorf("sequence_id %q is reserved for non-sequence requests", controls.CorrelationID)
	}

	if len(req.GetInputs()) != 1 {
		return fmt.Errorf("expected exactly 1 input tensor, got %d", len(req.GetInputs()))
	}

	input := req.GetInputs()[0]
	if input.GetName() != InputTensorName {
		return fmt.Errorf("unexpected input tensor name %q: want %q", input.GetName(), InputTensorName)
	}

	if input.GetDatatype() != DatatypeInt32 {
		return fmt.Errorf("unsupported datatype %q for tensor %q: want %q", input.GetDatatype(), input.GetName(), DatatypeInt32)
	}

	if n := len(input.GetContents().GetIntContents()); n != 1 {
		return fmt.Errorf("expected a single value in tensor %q, got %d", input.GetName(), n)
	}

	return nil
}

// String returns a human-readable representation of the controls
func (c SequenceControls) String() string {
	return fmt.Sprintf("SequenceControls{CorrelationID:%q, Start:%t, End:%t}", c.CorrelationID, c.Start, c.End)
}
