// Package jsonmatch provides matchers over JSON documents: schema
// validation and path lookups. A subject is a JSON document when it
// is a string or byte slice; any other value is encoded to JSON
// first.
package jsonmatch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"digital.vasic.expect/pkg/equality"
	"digital.vasic.expect/pkg/expect"
	"digital.vasic.expect/pkg/plugin"
)

// Version of the matcher set.
const Version = "1.0.0"

// Plugin returns the "json" matcher set:
//
//	toMatchSchema schema      subject validates against a JSON schema
//	toHaveJSONPath path [v]   path exists, and equals v when given
func Plugin() plugin.MatcherSet {
	return plugin.MatcherSet{
		SetName:    "json",
		SetVersion: Version,
		Matchers: map[string]expect.Matcher{
			"toMatchSchema":  matchSchema,
			"toHaveJSONPath": matchPath,
		},
	}
}

// Document returns the JSON text of v.
func Document(v any) (string, error) {
	switch d := v.(type) {
	case string:
		return d, nil
	case []byte:
		return string(d), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

// Validate checks doc against schema. Both may be JSON text or Go
// values. The returned problems are empty when doc is valid.
func Validate(schema, doc any) ([]string, error) {
	schemaText, err := Document(schema)
	if err != nil {
		return nil, err
	}
	docText, err := Document(doc)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaText),
		gojsonschema.NewStringLoader(docText),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// Lookup resolves a gjson path in doc. The second result is false
// when doc is not valid JSON or the path does not exist.
func Lookup(doc any, path string) (any, bool) {
	text, err := Document(doc)
	if err != nil || !gjson.Valid(text) {
		return nil, false
	}
	r := gjson.Get(text, path)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}

func matchSchema(x *expect.Expectation, a expect.Args) {
	problems, err := Validate(a.At(0), x.Subject())
	ok := err == nil && len(problems) == 0
	x.Assert(ok, "to match schema", a.At(0), a.Messages()...)
}

func matchPath(x *expect.Expectation, a expect.Args) {
	path, _ := a.At(0).(string)
	path = strings.TrimPrefix(path, "$.")

	got, ok := Lookup(x.Subject(), path)
	if ok && a.Len() > 1 {
		ok = equality.Equal(got, a.At(1))
		x.Assert(ok, "to have JSON path "+path+" equal to", a.At(1), a.Messages()...)
		return
	}
	x.Assert(ok && path != "", "to have JSON path", a.At(0), a.Messages()...)
}
