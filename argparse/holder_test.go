//nolint:testpackage // using package name 'argparse' to reach unexported pieces
package argparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlagHolderCounting(t *testing.T) {
	h := &flagHolder{holderBase: holderBase{fullName: "verbose"}}

	if !h.hasValue() {
		t.Error("Expected a flag to always report a value")
	}
	for i := 0; i < 3; i++ {
		if err := h.processFlag(); err != nil {
			t.Fatalf("Failed to process flag mention: %v", err)
		}
	}
	if h.count != 3 {
		t.Errorf("Expected count 3, got %d", h.count)
	}

	err := h.processValue("x")
	wantParseError(t, err, ErrorTypeSyntax, "flags don't accept values (`verbose`)")
}

// TestSingleValueStateMachine walks unset -> set and verifies the strict
// one-value policy.
func TestSingleValueStateMachine(t *testing.T) {
	h := newArgHolder[int]("integer", "")

	if h.hasValue() {
		t.Error("Expected no value before processing")
	}
	if err := h.processValue("42"); err != nil {
		t.Fatalf("Failed to process value: %v", err)
	}
	if !h.hasValue() || h.value != 42 {
		t.Errorf("Expected value 42, got %d (hasValue %v)", h.value, h.hasValue())
	}

	err := h.processValue("7")
	wantParseError(t, err, ErrorTypeSemantic, "argument accepts only one value (`integer`)")

	err = h.processFlag()
	wantParseError(t, err, ErrorTypeSyntax, "argument requires a value (`integer`)")
}

// A configured default is a placeholder: the first real token overwrites
// it, and only a second real token trips the one-value policy.
func TestSingleValueDefaultOverwrite(t *testing.T) {
	h := newArgHolder[int]("integer", "")
	h.setDefault(3)

	if !h.hasValue() || h.value != 3 {
		t.Errorf("Expected default 3, got %d", h.value)
	}
	if err := h.processValue("42"); err != nil {
		t.Fatalf("Failed to overwrite default: %v", err)
	}
	if h.value != 42 {
		t.Errorf("Expected 42 after overwrite, got %d", h.value)
	}

	err := h.processValue("7")
	wantParseError(t, err, ErrorTypeSemantic, "accepts only one value")
}

func TestSingleValueCastFailure(t *testing.T) {
	h := newArgHolder[int]("integer", "")

	err := h.processValue("abc")
	wantParseError(t, err, ErrorTypeSemantic, "failed to cast argument string to value type (`integer`)")
	if h.hasValue() {
		t.Error("Expected no value after a failed cast")
	}
}

func TestMultiValueAccumulation(t *testing.T) {
	h := newMultiHolder[float64]("d", "")

	for _, token := range []string{"3.14", "2.71"} {
		if err := h.processValue(token); err != nil {
			t.Fatalf("Failed to process %q: %v", token, err)
		}
	}
	if diff := cmp.Diff([]float64{3.14, 2.71}, h.values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiValueDefaultCleared(t *testing.T) {
	h := newMultiHolder[int]("ints", "")
	h.setDefault([]int{1, 2})

	if diff := cmp.Diff([]int{1, 2}, h.values); diff != "" {
		t.Fatalf("Default mismatch (-want +got):\n%s", diff)
	}

	// First real value discards the whole default list.
	if err := h.processValue("5"); err != nil {
		t.Fatalf("Failed to process value: %v", err)
	}
	if err := h.processValue("6"); err != nil {
		t.Fatalf("Failed to process value: %v", err)
	}
	if diff := cmp.Diff([]int{5, 6}, h.values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

// The default list is dropped before the incoming token is cast, so even a
// failing token leaves the container cleared.
func TestMultiValueDefaultClearedBeforeCast(t *testing.T) {
	h := newMultiHolder[int]("ints", "")
	h.setDefault([]int{1})

	err := h.processValue("abc")
	wantParseError(t, err, ErrorTypeSemantic, "failed to cast argument string to value type (`ints`)")
	if len(h.values) != 0 {
		t.Errorf("Expected cleared default, got %v", h.values)
	}
}

func TestMultiValueProcessFlagClearsDefault(t *testing.T) {
	h := newMultiHolder[int]("ints", "")
	h.setDefault([]int{1, 2})

	if err := h.processFlag(); err != nil {
		t.Fatalf("Failed to process flag on a defaulted container: %v", err)
	}
	if len(h.values) != 0 {
		t.Errorf("Expected empty container, got %v", h.values)
	}
	if !h.hasValue() {
		t.Error("Expected the container to stay in the set state")
	}
}

func TestRequiredDefaultIncompatible(t *testing.T) {
	mustPanicContain(t, "argument with a default value can't be required (`integer`)", func() {
		AddArgTo[int](NewRegistry(), "integer", "").Default(1).Required()
	})
	mustPanicContain(t, "required argument can't have a default value (`integer`)", func() {
		AddArgTo[int](NewRegistry(), "integer", "").Required().Default(1)
	})
	mustPanicContain(t, "argument with a default value can't be required (`ints`)", func() {
		AddMultiArgTo[int](NewRegistry(), "ints", "").Default(1, 2).Required()
	})
}

func TestOptionsConfiguration(t *testing.T) {
	mustPanicContain(t, "set of options can't be empty (`integer`)", func() {
		AddArgTo[int](NewRegistry(), "integer", "").Options()
	})

	// Slices have no equality, so an options list needs EqualsUsing first.
	mustPanicContain(t, "no equality defined for the argument type (`pairs`)", func() {
		AddArgTo[[]int](NewRegistry(), "pairs", "").Options([]int{1, 2})
	})

	a := AddArgTo[[]int](NewRegistry(), "pairs", "").
		EqualsUsing(func(x, y []int) bool {
			return cmp.Equal(x, y)
		}).
		Options([]int{1, 2}, []int{3})
	if err := a.h.processValue("bad"); err == nil {
		t.Error("Expected cast failure for a slice argument without a caster")
	}
}

// Options and Default validate against each other in both orders.
func TestOptionsDefaultCrossValidation(t *testing.T) {
	mustPanicContain(t, "default value is not among the valid options (`integer`)", func() {
		AddArgTo[int](NewRegistry(), "integer", "").Options(1, 2).Default(5)
	})
	mustPanicContain(t, "default value is not among the valid options (`integer`)", func() {
		AddArgTo[int](NewRegistry(), "integer", "").Default(5).Options(1, 2, 3)
	})
	mustPanicContain(t, "contained values are not among the valid options (`ints`)", func() {
		AddMultiArgTo[int](NewRegistry(), "ints", "").Default(1, 9).Options(1, 2)
	})

	// Compatible combinations configure fine in either order.
	a := AddArgTo[int](NewRegistry(), "integer", "").Options(1, 2).Default(2)
	if v, ok := a.Get(); !ok || v != 2 {
		t.Errorf("Expected default 2, got %d (ok %v)", v, ok)
	}
	m := AddMultiArgTo[int](NewRegistry(), "ints", "").Default(1, 2).Options(1, 2, 3)
	if diff := cmp.Diff([]int{1, 2}, m.Values()); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessValueChecksOptions(t *testing.T) {
	h := newArgHolder[int]("integer", "")
	h.setOptions([]int{1, 2})

	err := h.processValue("5")
	wantParseError(t, err, ErrorTypeSemantic, "provided argument string casts to an illegal value (`integer`)")
	if h.hasValue() {
		t.Error("Expected no value after an options violation")
	}

	if err := h.processValue("1"); err != nil {
		t.Fatalf("Failed to process a member value: %v", err)
	}
	if h.value != 1 {
		t.Errorf("Expected 1, got %d", h.value)
	}
}
