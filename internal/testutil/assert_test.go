package testutil

import (
	"errors"
	"testing"
)

// mockTB captures whether a test failure occurred.
type mockTB struct {
	testing.TB // embedded for unimplemented methods
	failed     bool
}

func (m *mockTB) Helper()                           {}
func (m *mockTB) Fatal(args ...any)                 { m.failed = true }
func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func TestEqual(t *testing.T) {
	m := &mockTB{}

	Equal(m, 1, 1)
	if m.failed {
		t.Error("Equal(1, 1) should pass")
	}

	m.failed = false
	Equal(m, "foo", "foo")
	if m.failed {
		t.Error("Equal(foo, foo) should pass")
	}

	m.failed = false
	Equal(m, 1, 2)
	if !m.failed {
		t.Error("Equal(1, 2) should fail")
	}
}

func TestSliceEqual(t *testing.T) {
	m := &mockTB{}

	SliceEqual(m, []string{"a", "b"}, []string{"a", "b"})
	if m.failed {
		t.Error("SliceEqual on equal slices should pass")
	}

	m.failed = false
	SliceEqual(m, []string{"a"}, []string{"a", "b"})
	if !m.failed {
		t.Error("SliceEqual on different lengths should fail")
	}

	m.failed = false
	SliceEqual(m, []int{1, 2}, []int{2, 1})
	if !m.failed {
		t.Error("SliceEqual on reordered slices should fail")
	}
}

func TestLenAndEmpty(t *testing.T) {
	m := &mockTB{}

	Len(m, []int{1, 2, 3}, 3)
	Empty(m, []int{})
	if m.failed {
		t.Error("Len/Empty should pass")
	}

	Empty(m, []int{1})
	if !m.failed {
		t.Error("Empty on non-empty slice should fail")
	}
}

func TestContains(t *testing.T) {
	m := &mockTB{}
	Contains(m, "unclosed target header", "target")
	if m.failed {
		t.Error("Contains should pass")
	}
	Contains(m, "abc", "x")
	if !m.failed {
		t.Error("Contains should fail")
	}
}

func TestFormatMsg(t *testing.T) {
	if got := formatMsg(nil); got != "assertion failed" {
		t.Errorf("formatMsg(nil) = %q", got)
	}
	if got := formatMsg([]any{"line %d", 4}); got != "line 4" {
		t.Errorf("formatMsg = %q, want %q", got, "line 4")
	}
}

func TestNoErrorAndError(t *testing.T) {
	m := &mockTB{}
	errBoom := errors.New("boom")

	NoError(m, nil)
	if m.failed {
		t.Error("NoError(nil) should pass")
	}

	m.failed = false
	NoError(m, errBoom)
	if !m.failed {
		t.Error("NoError(err) should fail")
	}

	m.failed = false
	Error(m, errBoom)
	if m.failed {
		t.Error("Error(err) should pass")
	}

	m.failed = false
	Error(m, nil)
	if !m.failed {
		t.Error("Error(nil) should fail")
	}
}

func TestGreater(t *testing.T) {
	m := &mockTB{}

	Greater(m, 2, 1)
	if m.failed {
		t.Error("Greater(2, 1) should pass")
	}

	m.failed = false
	Greater(m, 1, 1)
	if !m.failed {
		t.Error("Greater(1, 1) should fail")
	}
}
