package report

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// HistoricalEntry represents a single run in the historical log.
type HistoricalEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"run_id,omitempty"`
	Suite            string    `json:"suite"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	AssertionsPassed int       `json:"assertions_passed"`
	AssertionsTotal  int       `json:"assertions_total"`
}

// AppendToHistory adds an entry for run to the historical log
// stored at historyPath. Each entry is a single JSON line.
func AppendToHistory(historyPath string, run *Run) error {
	entry := HistoricalEntry{
		Timestamp:        run.EndTime,
		RunID:            run.ID,
		Suite:            run.Suite,
		Status:           run.Status(),
		Duration:         run.Duration.String(),
		AssertionsPassed: run.Summary.Passed,
		AssertionsTotal:  run.Summary.Total,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	file, err := os.OpenFile(historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// ReadHistory returns the entries of the log at historyPath, oldest
// first. A missing log has no entries.
func ReadHistory(historyPath string) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []HistoricalEntry
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e HistoricalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
