package bank

import "digital.vasic.expect/pkg/assertion"

// BankFile is the on-disk structure of a bank file. The same
// layout is read from JSON and from YAML.
type BankFile struct {
	Version  string         `json:"version" yaml:"version"`
	Name     string         `json:"name" yaml:"name"`
	Suites   []Suite        `json:"suites" yaml:"suites"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Suite is a named group of assertion definitions together with
// the values they are checked against.
type Suite struct {
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Values      map[string]any         `json:"values,omitempty" yaml:"values,omitempty"`
	Assertions  []assertion.Definition `json:"assertions" yaml:"assertions"`
}

// Evaluate runs the suite's definitions against its own values.
func (s *Suite) Evaluate(e assertion.Engine) []assertion.Result {
	return s.EvaluateWith(e, s.Values)
}

// EvaluateWith runs the suite's definitions against values,
// which override the suite's own values of the same name.
func (s *Suite) EvaluateWith(e assertion.Engine, values map[string]any) []assertion.Result {
	merged := make(map[string]any, len(s.Values)+len(values))
	for k, v := range s.Values {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	return e.EvaluateAll(s.Assertions, merged)
}
