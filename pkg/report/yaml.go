package report

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLReporter generates YAML reports from runs.
type YAMLReporter struct{}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter() *YAMLReporter {
	return &YAMLReporter{}
}

// GenerateReport creates a YAML report for a single run.
func (r *YAMLReporter) GenerateReport(run *Run) ([]byte, error) {
	return yaml.Marshal(run)
}

// GenerateMasterSummary creates a YAML summary of runs.
func (r *YAMLReporter) GenerateMasterSummary(runs []*Run) ([]byte, error) {
	return yaml.Marshal(BuildMasterSummary(runs))
}

// WriteReport writes a YAML report to the specified writer.
func (r *YAMLReporter) WriteReport(w io.Writer, run *Run) error {
	return writeReport(r, w, run)
}
