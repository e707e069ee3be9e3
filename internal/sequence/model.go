package sequence

// Built-in sequence model names. The "dyna" variants fold the integer
// value of the correlation id into the output of the terminal request.
const (
	SimpleSequenceModel           = "simple_sequence"
	SimpleDynaSequenceModel       = "simple_dyna_sequence"
	SimpleStringDynaSequenceModel = "simple_string_dyna_sequence"
)

// Model describes the behavior of one served sequence model.
type Model struct {
	Name              string
	FoldCorrelationID bool
}

// Registry maps model names to their configured behavior.
type Registry struct {
	models map[string]Model
}

// NewRegistry builds a registry from a model list. Later entries
// override earlier ones with the same name.
func NewRegistry(models []Model) *Registry {
	r := &Registry{models: make(map[string]Model, len(models))}
	for _, m := range models {
		r.models[m.Name] = m
	}
	return r
}

// DefaultModels returns the model set served out of the box.
func DefaultModels() []Model {
	return []Model{
		{Name: SimpleSequenceModel, FoldCorrelationID: false},
		{Name: SimpleDynaSequenceModel, FoldCorrelationID: true},
		{Name: SimpleStringDynaSequenceModel, FoldCorrelationID: true},
	}
}

// Lookup resolves a model by name.
func (r *Registry) Lookup(name string) (Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Names returns the registered model names (for diagnostics).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}
