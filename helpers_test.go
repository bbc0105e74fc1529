package carve

import (
	"math"
	"testing"
)

// Shared assert helpers for the carve package tests.

func assertTrue(t *testing.T, name string, got bool) {
	t.Helper()
	if !got {
		t.Errorf("%s = false, want true", name)
	}
}

func assertFalse(t *testing.T, name string, got bool) {
	t.Helper()
	if got {
		t.Errorf("%s = true, want false", name)
	}
}

func assertInt(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %d, want %d", name, got, want)
	}
}

func assertIVec3(t *testing.T, name string, got, want IVec3) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertRegion(t *testing.T, name string, got, want Region) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func assertNear(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tolerance)
	}
}

func assertVoxel(t *testing.T, name string, got, want Voxel) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func assertColor(t *testing.T, name string, got, want Color) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// silenceLogs swaps Logf for a test-scoped recorder and restores it on
// cleanup. Returns a pointer to the captured line count.
func silenceLogs(t *testing.T) *int {
	t.Helper()
	count := 0
	prev := Logf
	Logf = func(format string, v ...interface{}) { count++ }
	t.Cleanup(func() { Logf = prev })
	return &count
}
