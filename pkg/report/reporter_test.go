package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReporters_Implement(t *testing.T) {
	var _ Reporter = NewJSONReporter(false)
	var _ Reporter = NewYAMLReporter()
	var _ Reporter = NewHTMLReporter()
}

func TestJSONReporter_GenerateReport(t *testing.T) {
	run := sampleRun(t, "api", false)

	tests := []struct {
		name   string
		pretty bool
	}{
		{"compact", false},
		{"pretty", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := NewJSONReporter(tt.pretty).GenerateReport(run)
			require.NoError(t, err)
			assert.Equal(t, tt.pretty, strings.Contains(string(data), "\n  "))

			var decoded Run
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "api", decoded.Suite)
			assert.Equal(t, run.Summary, decoded.Summary)
			assert.Len(t, decoded.Assertions, 3)
		})
	}
}

func TestJSONReporter_GenerateMasterSummary(t *testing.T) {
	data, err := NewJSONReporter(false).GenerateMasterSummary(
		[]*Run{sampleRun(t, "a", true), sampleRun(t, "b", false)},
	)
	require.NoError(t, err)

	var s MasterSummary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 2, s.TotalSuites)
	assert.Equal(t, 1, s.FailedSuites)
}

func TestYAMLReporter(t *testing.T) {
	run := sampleRun(t, "api", true)
	r := NewYAMLReporter()

	data, err := r.GenerateReport(run)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "api", decoded["suite"])
	summary, ok := decoded["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3, summary["total"])

	data, err = r.GenerateMasterSummary([]*Run{run})
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_suites: 1")
}

func TestHTMLReporter_GenerateReport(t *testing.T) {
	data, err := NewHTMLReporter().GenerateReport(sampleRun(t, "<api>", false))
	require.NoError(t, err)

	page := string(data)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "Suite Report: &lt;api&gt;")
	assert.Contains(t, page, "<strong>FAILED</strong>")
	assert.Contains(t, page, "2/3 (67%)")
	assert.Contains(t, page, "expected &#34;&lt;ok&gt;&#34; to contain &#34;&lt;ok&gt;&#34;")
	assert.NotContains(t, page, "<ok>")
}

func TestHTMLReporter_GenerateMasterSummary(t *testing.T) {
	data, err := NewHTMLReporter().GenerateMasterSummary(
		[]*Run{sampleRun(t, "a", true), sampleRun(t, "b", false)},
	)
	require.NoError(t, err)

	page := string(data)
	assert.Contains(t, page, "<td>Total Suites</td><td>2</td>")
	assert.Contains(t, page, "<tr><td>Pass Rate</td><td>50%</td></tr>")
	assert.Contains(t, page, "<h3>b</h3>")
	assert.NotContains(t, page, "<h3>a</h3>")
	assert.Contains(t, page, "expected 500 to equal 200")
}

func TestWriteReport(t *testing.T) {
	run := sampleRun(t, "api", true)

	for _, r := range []Reporter{NewJSONReporter(true), NewYAMLReporter(), NewHTMLReporter()} {
		var buf bytes.Buffer
		require.NoError(t, r.WriteReport(&buf, run))

		want, err := r.GenerateReport(run)
		require.NoError(t, err)
		assert.Equal(t, string(want), buf.String())
	}
}
