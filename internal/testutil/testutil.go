// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertErrorIs fails the test unless err wraps target.
func AssertErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

// AssertEqual reports a go-cmp diff when got and want differ.
func AssertEqual(t testing.TB, got, want any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// Values16 expands a row-major table of rows into a flat slice, which keeps
// small frame fixtures readable in tests.
func Values16(rows ...[]uint16) []uint16 {
	var out []uint16
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
