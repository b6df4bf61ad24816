package testutil

import (
	"errors"
	"fmt"
	"testing"
)

func TestAssertNoError_NilErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertNoError(fakeT, nil)
	if fakeT.Failed() {
		t.Error("expected no failure for nil error")
	}
}

func TestAssertError_WithErr(t *testing.T) {
	fakeT := &testing.T{}
	AssertError(fakeT, errors.New("something wrong"))
	if fakeT.Failed() {
		t.Error("expected no failure when error is present")
	}
}

func TestAssertErrorIs_Wrapped(t *testing.T) {
	sentinel := errors.New("sentinel")
	fakeT := &testing.T{}
	AssertErrorIs(fakeT, fmt.Errorf("ctx: %w", sentinel), sentinel)
	if fakeT.Failed() {
		t.Error("expected no failure for wrapped sentinel")
	}
}

func TestAssertEqual_Match(t *testing.T) {
	fakeT := &testing.T{}
	AssertEqual(fakeT, []uint16{1, 2}, []uint16{1, 2})
	if fakeT.Failed() {
		t.Error("expected no failure for equal slices")
	}
}

func TestValues16(t *testing.T) {
	got := Values16([]uint16{1, 2}, []uint16{3, 4})
	want := []uint16{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
