package argparse

import "reflect"

// equalsFor returns the equality function for T, or nil when T carries no
// equality capability. Options refuses to register an allowed-values list
// for a holder whose equality is nil and was not overridden via EqualsUsing.
func equalsFor[T any]() func(a, b T) bool {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || !t.Comparable() {
		// t == nil means T is an interface type; no stable equality either way.
		return nil
	}
	return func(a, b T) bool {
		return any(a) == any(b)
	}
}

// isValidValue reports whether value equals some member of options under eq.
// Callers guarantee eq is non-nil whenever options is non-empty.
func isValidValue[T any](eq func(a, b T) bool, value T, options []T) bool {
	for _, opt := range options {
		if eq(value, opt) {
			return true
		}
	}
	return false
}
