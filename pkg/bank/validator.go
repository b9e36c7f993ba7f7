package bank

import (
	"fmt"
	"os"
	"path/filepath"

	"digital.vasic.expect/pkg/expect"
)

// ValidationError represents a validation issue found in a bank file.
type ValidationError struct {
	Suite   string
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	switch {
	case e.Suite != "" && e.Index >= 0:
		return fmt.Sprintf("%s.assertions[%d].%s: %s", e.Suite, e.Index, e.Field, e.Message)
	case e.Suite != "":
		return fmt.Sprintf("%s.%s: %s", e.Suite, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates a bank file and returns all errors found.
// Matchers are resolved in reg, or in the default registry when
// reg is nil.
func ValidateFile(path string, reg *expect.Registry) []ValidationError {
	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}

	file, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return []ValidationError{{Field: "syntax", Message: err.Error(), Index: -1}}
	}
	return Validate(file, reg)
}

// Validate checks a decoded bank file: a version is required, suite
// names must be present and unique, and every assertion needs a
// registered matcher and a target. A target with no value in the
// suite is allowed, since values may be supplied at run time.
func Validate(file BankFile, reg *expect.Registry) []ValidationError {
	if reg == nil {
		reg = expect.DefaultRegistry()
	}

	var errs []ValidationError
	if file.Version == "" {
		errs = append(errs, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}

	names := make(map[string]bool)
	for i, s := range file.Suites {
		switch {
		case s.Name == "":
			errs = append(errs, ValidationError{
				Field: "name", Message: fmt.Sprintf("suite %d has no name", i), Index: -1,
			})
		case names[s.Name]:
			errs = append(errs, ValidationError{
				Suite: s.Name, Field: "name", Message: "duplicate suite name", Index: -1,
			})
		default:
			names[s.Name] = true
		}

		for j, def := range s.Assertions {
			if def.Matcher == "" {
				errs = append(errs, ValidationError{
					Suite: s.Name, Field: "matcher", Message: "matcher is required", Index: j,
				})
			} else if !reg.Has(def.Matcher) {
				errs = append(errs, ValidationError{
					Suite: s.Name, Field: "matcher",
					Message: fmt.Sprintf("unknown matcher: %s", def.Matcher), Index: j,
				})
			}
			if def.Target == "" {
				errs = append(errs, ValidationError{
					Suite: s.Name, Field: "target", Message: "target is required", Index: j,
				})
			}
		}
	}
	return errs
}
