package checker

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/caiyueliang/client/internal/sequence"
)

// defaultValues is the fixed input series each sequence is built from.
var defaultValues = []int32{11, 7, 5, 3, 2, 0, 1, 19}

// Sequence is one planned sequence: its correlation id, the model it
// targets, the ordered input values and the locally computed expected
// outputs.
type Sequence struct {
	CorrelationID string
	ModelName     string
	Values        []int32
	Expected      []int32
}

// Plan holds the three sequences exercised by one conformance run: two
// integer-identified and one string-identified.
type Plan struct {
	Sequences []Sequence
}

// Total returns the number of requests (and expected results) in the plan
func (p *Plan) Total() int {
	total := 0
	for _, seq := range p.Sequences {
		total += len(seq.Values)
	}
	return total
}

// IndexOf finds the plan position of a correlation id, or -1
func (p *Plan) IndexOf(correlationID string) int {
	for i, seq := range p.Sequences {
		if seq.CorrelationID == correlationID {
			return i
		}
	}
	return -1
}

// BuildPlan assembles the three sequences. The offset shifts the
// numeric correlation ids only; expected accumulations do not depend on
// it outside of dyna folding. In dyna mode the string sequence gets a
// decimal correlation id (the dyna models fold it into the terminal
// output); otherwise it gets a UUIDv4.
func BuildPlan(dyna bool, offset int, modelOverride string) (*Plan, error) {
	intModel := sequence.SimpleSequenceModel
	stringModel := sequence.SimpleSequenceModel
	if dyna {
		intModel = sequence.SimpleDynaSequenceModel
		stringModel = sequence.SimpleStringDynaSequenceModel
	}
	if modelOverride != "" {
		intModel = modelOverride
		stringModel = modelOverride
	}

	negated := make([]int32, len(defaultValues))
	for i, v := range defaultValues {
		negated[i] = -v
	}

	stringID := uuid.NewString()
	if dyna {
		stringID = strconv.Itoa(1002 + offset)
	}

	plan := &Plan{
		Sequences: []Sequence{
			{
				CorrelationID: strconv.Itoa(1000 + offset*2),
				ModelName:     intModel,
				Values:        prepend(0, defaultValues),
			},
			{
				CorrelationID: strconv.Itoa(1001 + offset*2),
				ModelName:     intModel,
				Values:        prepend(100, negated),
			},
			{
				CorrelationID: stringID,
				ModelName:     stringModel,
				Values:        prepend(20, negated),
			},
		},
	}

	for i := range plan.Sequences {
		seq := &plan.Sequences[i]
		expected, err := ExpectedOutputs(seq.Values, seq.CorrelationID, dyna)
		if err != nil {
			return nil, fmt.Errorf("sequence %s: %w", seq.CorrelationID, err)
		}
		seq.Expected = expected
	}

	return plan, nil
}

// ExpectedOutputs computes the expected output series for one sequence:
// the running sum of inputs through each position, with the integer
// value of the correlation id folded into the terminal position in dyna
// mode.
func ExpectedOutputs(values []int32, correlationID string, dyna bool) ([]int32, error) {
	expected := make([]int32, len(values))

	var sum int32
	for i, v := range values {
		sum += v
		expected[i] = sum
	}

	if dyna && len(expected) > 0 {
		id, err := strconv.ParseInt(correlationID, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("dyna mode requires an integer correlation id, got %q", correlationID)
		}
		expected[len(expected)-1] += int32(id)
	}

	return expected, nil
}

// prepend returns a new slice with v0 followed by values
func prepend(v0 int32, values []int32) []int32 {
	out := make([]int32, 0, len(values)+1)
	out = append(out, v0)
	out = append(out, values...)
	return out
}
