// Package testbackend routes expectation failures into a host
// testing.TB through testify. It is kept apart from package backend
// so production builds never link the testing package.
package testbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/backend"
)

// Testing reports failures to t as non-fatal test errors, so host
// test runners display them like any other assertion.
func Testing(t testing.TB) backend.Backend {
	return backend.Funcs{
		FailFunc: func(message string) {
			t.Helper()
			assert.Fail(t, message)
		},
	}
}

// Require reports failures to t and stops the test immediately.
func Require(t testing.TB) backend.Backend {
	return backend.Funcs{
		FailFunc: func(message string) {
			t.Helper()
			require.FailNow(t, message)
		},
	}
}
