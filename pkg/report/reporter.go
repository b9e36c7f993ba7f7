// Package report renders the results of declarative assertion runs
// as JSON, YAML, HTML and Markdown.
//
// Like runner, report is optional. The core expectation packages
// never import it.
package report

import "io"

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport creates a report for a single run.
	GenerateReport(run *Run) ([]byte, error)

	// GenerateMasterSummary creates a summary of several runs.
	GenerateMasterSummary(runs []*Run) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, run *Run) error
}

// writeReport is the WriteReport shared by byte-oriented reporters.
func writeReport(r Reporter, w io.Writer, run *Run) error {
	data, err := r.GenerateReport(run)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
