package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.expect/pkg/assertion"
)

// Summary aggregates the results of a run.
type Summary struct {
	Total    int     `json:"total" yaml:"total"`
	Passed   int     `json:"passed" yaml:"passed"`
	Failed   int     `json:"failed" yaml:"failed"`
	PassRate float64 `json:"pass_rate" yaml:"pass_rate"`

	// Failures holds the messages of the failed results in order.
	Failures []string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Summarize counts results. PassRate is 0 for an empty run.
func Summarize(results []assertion.Result) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		if r.Passed {
			s.Passed++
			continue
		}
		s.Failed++
		s.Failures = append(s.Failures, r.Message)
	}
	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total)
	}
	return s
}

// MasterSummary represents an aggregated summary of several runs.
type MasterSummary struct {
	ID              string         `json:"id" yaml:"id"`
	GeneratedAt     time.Time      `json:"generated_at" yaml:"generated_at"`
	Suites          []SuiteSummary `json:"suites" yaml:"suites"`
	TotalSuites     int            `json:"total_suites" yaml:"total_suites"`
	PassedSuites    int            `json:"passed_suites" yaml:"passed_suites"`
	FailedSuites    int            `json:"failed_suites" yaml:"failed_suites"`
	TotalAssertions int            `json:"total_assertions" yaml:"total_assertions"`
	TotalDuration   time.Duration  `json:"total_duration" yaml:"total_duration"`
	PassRate        float64        `json:"pass_rate" yaml:"pass_rate"`
}

// SuiteSummary represents a summary of a single run.
type SuiteSummary struct {
	Suite            string        `json:"suite" yaml:"suite"`
	Status           string        `json:"status" yaml:"status"`
	Duration         time.Duration `json:"duration" yaml:"duration"`
	AssertionsPassed int           `json:"assertions_passed" yaml:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total" yaml:"assertions_total"`
}

// BuildMasterSummary creates a master summary from runs. PassRate
// is the fraction of passed suites.
func BuildMasterSummary(runs []*Run) *MasterSummary {
	now := time.Now()
	summary := &MasterSummary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Suites:      make([]SuiteSummary, 0, len(runs)),
	}

	for _, r := range runs {
		summary.Suites = append(summary.Suites, SuiteSummary{
			Suite:            r.Suite,
			Status:           r.Status(),
			Duration:         r.Duration,
			AssertionsPassed: r.Summary.Passed,
			AssertionsTotal:  r.Summary.Total,
		})
		summary.TotalSuites++
		summary.TotalAssertions += r.Summary.Total
		summary.TotalDuration += r.Duration

		if r.Passed() {
			summary.PassedSuites++
		} else {
			summary.FailedSuites++
		}
	}

	if summary.TotalSuites > 0 {
		summary.PassRate = float64(summary.PassedSuites) / float64(summary.TotalSuites)
	}
	return summary
}

// SaveMasterSummary saves the master summary to both JSON and
// Markdown files in outputDir and points latest_summary.{json,md}
// at them.
func SaveMasterSummary(summary *MasterSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("master_summary_%s.json", ts))
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("write JSON summary: %w", err)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("master_summary_%s.md", ts))
	if err := os.WriteFile(mdPath, []byte(SummaryMarkdown(summary)), 0644); err != nil {
		return fmt.Errorf("write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// SummaryMarkdown renders a master summary as Markdown tables.
func SummaryMarkdown(summary *MasterSummary) string {
	var sb strings.Builder

	sb.WriteString("# Assertion Runs - Master Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Suite | Status | Duration | Assertions |\n")
	sb.WriteString("|-------|--------|----------|------------|\n")
	for _, s := range summary.Suites {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d |\n",
			s.Suite, strings.ToUpper(s.Status), s.Duration,
			s.AssertionsPassed, s.AssertionsTotal,
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Suites | %d |\n", summary.TotalSuites)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedSuites)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedSuites)
	fmt.Fprintf(&sb, "| Assertions | %d |\n", summary.TotalAssertions)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}
