package format

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"digital.vasic.expect/pkg/value"
)

type user struct {
	Name string
	Age  int
}

type cyclic struct {
	Name string
	Self *cyclic
}

type tag struct{ name string }

func (t tag) NodeType() int    { return 1 }
func (t tag) NodeName() string { return t.name }

type textNode struct{}

func (textNode) NodeType() int    { return 3 }
func (textNode) NodeName() string { return "#text" }

type level int

func (l level) String() string { return "level-" + Number(int(l)) }

func parseInput() {}

func TestValue(t *testing.T) {
	s := "boxed"
	n := 7
	date := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"undefined", value.Undefined, "undefined"},
		{"nil", nil, "null"},
		{"null", value.Null, "null"},
		{"string", "abc", `"abc"`},
		{"boxed string", &s, "[boxed]"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"boxed int", &n, "[7]"},
		{"large float", 1e21, "1e+21"},
		{"NaN", math.NaN(), "NaN"},
		{"bool", true, "true"},
		{"named func", parseInput, "function parseInput(){}"},
		{"closure", func() {}, "function (){}"},
		{"date", date, "[Date Tue, 05 Mar 2024 14:07:09 GMT]"},
		{"pattern", regexp.MustCompile(`^a+$`), "/^a+$/"},
		{"slice", []int{1, 2, 3}, "[1, 2, 3]"},
		{"empty slice", []string{}, "[]"},
		{"nested slice", []any{"a", []int{1}}, `["a", [1]]`},
		{"slice with undefined", []any{value.Undefined, nil}, "[undefined, null]"},
		{"struct", user{Name: "Ann", Age: 3}, `{"Name": "Ann", "Age": 3}`},
		{"map", map[string]int{"b": 2, "a": 1}, `{"a": 1, "b": 2}`},
		{"empty map", map[string]int{}, "{}"},
		{"slice pointer", &[]int{1, 2}, "[1, 2]"},
		{"map pointer", &map[string]int{"a": 1}, `{"a": 1}`},
		{"error", errors.New("boom"), "[boom]"},
		{"element", tag{"DIV"}, "<div />"},
		{"text node", textNode{}, "{}"},
		{"stringer number", level(2), "level-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.value, false))
		})
	}
}

func TestValue_IgnoreUndefined(t *testing.T) {
	assert.Equal(t, "", Value(value.Undefined, true))
	assert.Equal(t, "undefined", Value(value.Undefined, false))
	assert.Equal(t, "null", Value(nil, true))
}

func TestValue_CircularMapping(t *testing.T) {
	c := &cyclic{Name: "root"}
	c.Self = c

	got := Value(c, false)
	assert.Equal(t, `{"Name": "root", "Self": [Circular]}`, got)
}

func TestValue_CircularMap(t *testing.T) {
	m := map[string]any{"k": 1}
	m["self"] = m

	assert.Equal(t, `{"k": 1, "self": [Circular]}`, Value(m, false))
}

func TestValue_CircularSequence(t *testing.T) {
	s := make([]any, 2)
	s[0] = 1
	s[1] = s

	assert.Equal(t, "[1, [1,]]", Value(s, false))
}

func TestValue_SiblingsAreNotCircular(t *testing.T) {
	shared := &user{Name: "x"}
	pair := []any{shared, shared}

	got := Value(pair, false)
	assert.Equal(t, `[{"Name": "x", "Age": 0}, {"Name": "x", "Age": 0}]`, got)
	assert.NotContains(t, got, "Circular")
}

func TestValue_DepthLimit(t *testing.T) {
	var v any = "leaf"
	for i := 0; i < MaxDepth+2; i++ {
		v = []any{v}
	}

	got := Value(v, false)
	assert.Equal(t, MaxDepth+1, strings.Count(got, "["))
	assert.NotContains(t, got, `"leaf"`)
	assert.Contains(t, got, "leaf")
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"sequence", []any{1, "a", nil, value.Undefined}, "1,a,,"},
		{"nested sequence", []any{1, []int{2, 3}}, "1,2,3"},
		{"sequence pointer", &[]int{4, 5}, "4,5"},
		{"mapping", user{}, "[object Object]"},
		{"error", errors.New("bad"), "bad"},
		{"text", "plain", "plain"},
		{"negative", -3, "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.value))
		})
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "18446744073709551615", Number(uint64(math.MaxUint64)))
	assert.Equal(t, "0.1", Number(float32(0.1)))
	assert.Equal(t, "1e-07", Number(1e-7))
	assert.Equal(t, "+Inf", Number(math.Inf(1)))
	assert.Equal(t, "-Inf", Number(math.Inf(-1)))
	assert.Equal(t, "0", Number(0.0))
}
