package report

import (
	"encoding/json"
	"io"
)

// JSONReporter generates JSON reports from runs.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport creates a JSON report for a single run.
func (r *JSONReporter) GenerateReport(run *Run) ([]byte, error) {
	return r.marshal(run)
}

// GenerateMasterSummary creates a JSON summary of runs.
func (r *JSONReporter) GenerateMasterSummary(runs []*Run) ([]byte, error) {
	return r.marshal(BuildMasterSummary(runs))
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(w io.Writer, run *Run) error {
	return writeReport(r, w, run)
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
