package bank

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/assertion"
)

const yamlBank = `
version: "1.0"
name: http checks
suites:
  - name: health
    description: service health endpoint
    values:
      status: 200
      body: '{"ok":true}'
      latency: 0.123
      tags: [api, public]
    assertions:
      - matcher: toEqual
        target: status
        value: 200
      - matcher: toContainText
        target: body
        value: OK
      - matcher: toBeCloseTo
        target: latency
        value: 0.12
        precision: 2
      - matcher: toContain
        target: tags
        value: api
        not: true
        message: tags
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func createJSONBankFile(t *testing.T, dir, name string, file BankFile) string {
	t.Helper()
	data, err := json.Marshal(file)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(data))
}

func TestBank_LoadFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "health.yaml", yamlBank)

	b := New()
	require.NoError(t, b.LoadFile(path))
	assert.Equal(t, 1, b.Count())

	s, ok := b.Get("health")
	require.True(t, ok)
	assert.Equal(t, "service health endpoint", s.Description)
	require.Len(t, s.Assertions, 4)
	assert.Equal(t, 200, s.Values["status"])
	assert.Equal(t, []any{"api", "public"}, s.Values["tags"])
	require.NotNil(t, s.Assertions[2].Precision)
	assert.Equal(t, 2, *s.Assertions[2].Precision)
	assert.True(t, s.Assertions[3].Not)
}

func TestBank_LoadFile_JSON(t *testing.T) {
	path := createJSONBankFile(t, t.TempDir(), "bank.json", BankFile{
		Version: "1.0",
		Suites: []Suite{
			{
				Name:   "numbers",
				Values: map[string]any{"n": 5},
				Assertions: []assertion.Definition{
					{Matcher: "toBeGreaterThan", Target: "n", Value: 3},
				},
			},
			{Name: "empty"},
		},
	})

	b := New()
	require.NoError(t, b.LoadFile(path))
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, []string{path}, b.Sources())

	s, ok := b.Get("numbers")
	require.True(t, ok)
	assert.Equal(t, float64(5), s.Values["n"])
}

func TestBank_LoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"not found", filepath.Join(dir, "missing.json")},
		{"invalid json", writeFile(t, dir, "bad.json", "{invalid")},
		{"invalid yaml", writeFile(t, dir, "bad.yaml", "suites: [unclosed")},
		{"unnamed suite", writeFile(t, dir, "unnamed.yml", "version: '1'\nsuites:\n  - description: x\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			assert.Error(t, b.LoadFile(tt.path))
			assert.Equal(t, 0, b.Count())
		})
	}
}

func TestBank_LoadFile_ReplacesByName(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.yaml", "suites:\n  - name: s\n    description: first\n")
	second := writeFile(t, dir, "b.yaml", "suites:\n  - name: s\n    description: second\n")

	b := New()
	require.NoError(t, b.LoadFile(first))
	require.NoError(t, b.LoadFile(second))

	s, _ := b.Get("s")
	assert.Equal(t, "second", s.Description)
	assert.Equal(t, 1, b.Count())
	assert.Len(t, b.Sources(), 2)

	require.NoError(t, b.LoadFile(first))
	s, _ = b.Get("s")
	assert.Equal(t, "first", s.Description)
	assert.Equal(t, []string{first, second}, b.Sources())
}

func TestBank_LoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", "suites:\n  - name: b\n")
	writeFile(t, dir, "two.YML", "suites:\n  - name: a\n")
	createJSONBankFile(t, dir, "three.json", BankFile{Suites: []Suite{{Name: "c"}}})
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	writeFile(t, filepath.Join(dir, "nested"), "deep.yaml", "suites:\n  - name: deep\n")

	b := New()
	require.NoError(t, b.LoadDir(dir))

	all := b.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
	assert.Equal(t, "c", all[2].Name)
}

func TestBank_LoadDir_Errors(t *testing.T) {
	b := New()
	assert.Error(t, b.LoadDir("/nonexistent/dir"))

	dir := t.TempDir()
	writeFile(t, dir, "bad.json", "{")
	assert.Error(t, b.LoadDir(dir))
}

func TestSuite_Evaluate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "health.yaml", yamlBank)
	b := New()
	require.NoError(t, b.LoadFile(path))
	s, _ := b.Get("health")

	results := s.Evaluate(assertion.NewEngine())
	require.Len(t, results, 4)

	assert.True(t, results[0].Passed, results[0].Message)
	assert.True(t, results[1].Passed, results[1].Message)
	assert.True(t, results[2].Passed, results[2].Message)
	assert.False(t, results[3].Passed)
	assert.Equal(t, `tags: expected ["api", "public"] not to contain "api"`, results[3].Message)
}

func TestSuite_EvaluateWith_Overrides(t *testing.T) {
	s := &Suite{
		Name:   "override",
		Values: map[string]any{"status": 200, "region": "eu"},
		Assertions: []assertion.Definition{
			{Matcher: "toEqual", Target: "status", Value: 200},
			{Matcher: "toEqual", Target: "region", Value: "eu"},
		},
	}

	results := s.EvaluateWith(assertion.NewEngine(), map[string]any{"status": 503})
	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.Equal(t, 200, s.Values["status"])
}
