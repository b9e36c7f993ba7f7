package testbackend

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/expect"
)

type fakeT struct {
	testing.TB
	errors []string
	fatal  bool
}

func (f *fakeT) Helper() {}

func (f *fakeT) Name() string { return "fakeT" }

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) FailNow() {
	f.fatal = true
}

func TestTesting(t *testing.T) {
	ft := &fakeT{}
	b := Testing(ft)

	b.Pass("fine")
	assert.Empty(t, ft.errors)

	b.Fail("expected 1 to equal 2")
	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "expected 1 to equal 2")
	assert.False(t, ft.fatal)
}

func TestRequire(t *testing.T) {
	ft := &fakeT{}
	Require(ft).Fail("expected null to be defined")

	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "expected null to be defined")
	assert.True(t, ft.fatal)
}

func TestTesting_WithExpectation(t *testing.T) {
	ft := &fakeT{}
	x := expect.New([]int{1}, expect.WithBackend(Testing(ft)))

	x.ToBeDefined()
	x.Not().ToContain(2)
	assert.Empty(t, ft.errors)

	x.ToContain(3)
	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "expected [1] to contain 3")
}
