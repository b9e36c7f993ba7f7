package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"
)

// HTMLReporter generates standalone HTML pages from runs.
type HTMLReporter struct{}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter() *HTMLReporter {
	return &HTMLReporter{}
}

// GenerateReport creates an HTML report for a single run.
func (r *HTMLReporter) GenerateReport(run *Run) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(&buf, run); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport writes an HTML report to the specified writer.
func (r *HTMLReporter) WriteReport(w io.Writer, run *Run) error {
	writeHeader(w, "Suite Report: "+run.Suite)

	fmt.Fprintf(w, "<h1>Suite Report: %s</h1>\n", html.EscapeString(run.Suite))
	fmt.Fprintf(w, "<p><strong>Generated:</strong> %s</p>\n", run.EndTime.Format(time.RFC3339))

	writeRunSummary(w, run)
	writeAssertions(w, run.Assertions)

	writeFooter(w)
	return nil
}

func statusClass(passed bool) string {
	if passed {
		return "status-passed"
	}
	return "status-failed"
}

func writeRunSummary(w io.Writer, run *Run) {
	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(w, "<tr><td>Status</td><td class=\"%s\"><strong>%s</strong></td></tr>\n",
		statusClass(run.Passed()), strings.ToUpper(run.Status()))
	fmt.Fprintf(w, "<tr><td>Start Time</td><td>%s</td></tr>\n", run.StartTime.Format(time.RFC3339))
	fmt.Fprintf(w, "<tr><td>Duration</td><td>%v</td></tr>\n", run.Duration)
	fmt.Fprintf(w, "<tr><td>Pass Rate</td><td>%d/%d (%.0f%%)</td></tr>\n",
		run.Summary.Passed, run.Summary.Total, run.Summary.PassRate*100)
	fmt.Fprintln(w, "</table>")
}

func writeAssertions(w io.Writer, assertions []AssertionReport) {
	if len(assertions) == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Assertions</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Matcher</th><th>Target</th><th>Passed</th><th>Message</th></tr>")

	for _, a := range assertions {
		matcher := a.Matcher
		if a.Negated {
			matcher = "not " + matcher
		}
		passed := "No"
		if a.Passed {
			passed = "Yes"
		}
		fmt.Fprintf(w, "<tr><td><code>%s</code></td><td>%s</td><td class=\"%s\">%s</td><td>%s</td></tr>\n",
			html.EscapeString(matcher),
			html.EscapeString(a.Target),
			statusClass(a.Passed), passed,
			html.EscapeString(a.Message),
		)
	}

	fmt.Fprintln(w, "</table>")
}

// GenerateMasterSummary creates an HTML summary of runs.
func (r *HTMLReporter) GenerateMasterSummary(runs []*Run) ([]byte, error) {
	var buf bytes.Buffer
	summary := BuildMasterSummary(runs)

	writeHeader(&buf, "Assertion Runs - Master Summary")
	fmt.Fprintln(&buf, "<h1>Assertion Runs - Master Summary</h1>")
	fmt.Fprintf(&buf, "<p><strong>Generated:</strong> %s</p>\n", summary.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintln(&buf, "<h2>Overview</h2>")
	fmt.Fprintln(&buf, "<table>")
	fmt.Fprintln(&buf, "<tr><th>Suite</th><th>Status</th><th>Duration</th><th>Assertions</th></tr>")
	for _, s := range summary.Suites {
		fmt.Fprintf(&buf, "<tr><td>%s</td><td class=\"%s\">%s</td><td>%v</td><td>%d/%d</td></tr>\n",
			html.EscapeString(s.Suite),
			statusClass(s.Status == "passed"), strings.ToUpper(s.Status),
			s.Duration, s.AssertionsPassed, s.AssertionsTotal,
		)
	}
	fmt.Fprintln(&buf, "</table>")

	fmt.Fprintln(&buf, "<h2>Statistics</h2>")
	fmt.Fprintln(&buf, "<table>")
	fmt.Fprintln(&buf, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(&buf, "<tr><td>Total Suites</td><td>%d</td></tr>\n", summary.TotalSuites)
	fmt.Fprintf(&buf, "<tr><td>Passed</td><td>%d</td></tr>\n", summary.PassedSuites)
	fmt.Fprintf(&buf, "<tr><td>Failed</td><td>%d</td></tr>\n", summary.FailedSuites)
	if summary.TotalSuites > 0 {
		fmt.Fprintf(&buf, "<tr><td>Pass Rate</td><td>%.0f%%</td></tr>\n", summary.PassRate*100)
	}
	fmt.Fprintf(&buf, "<tr><td>Total Duration</td><td>%v</td></tr>\n", summary.TotalDuration)
	fmt.Fprintln(&buf, "</table>")

	for _, run := range runs {
		if run.Passed() {
			continue
		}
		fmt.Fprintf(&buf, "<h3>%s</h3>\n", html.EscapeString(run.Suite))
		fmt.Fprintln(&buf, "<ul>")
		for _, msg := range run.Summary.Failures {
			fmt.Fprintf(&buf, "<li class=\"status-failed\">%s</li>\n", html.EscapeString(msg))
		}
		fmt.Fprintln(&buf, "</ul>")
	}

	writeFooter(&buf)
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
table { border-collapse: collapse; width: 100%%; margin: 10px 0; }
th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
th { background: #3498db; color: #fff; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
</style>
</head>
<body>
`, html.EscapeString(title))
}

func writeFooter(w io.Writer) {
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
