package statekit

import "reflect"

// Equal reports whether two projected values are equal under the default
// equality rule.
//
// The rule mirrors what UI subscribers expect from a projection:
//
//   - slice and array projections compare element-wise, so a projection of
//     several fields ([]any{count, isUpdating}) changes when any element
//     changes
//   - everything else compares by strict equality of the single projected
//     value
//
// Comparable values use Go's == semantics; values whose dynamic type is not
// comparable fall back to [reflect.DeepEqual] rather than panicking.
func Equal(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)

	if !av.IsValid() || !bv.IsValid() {
		// at least one untyped nil; equal only if both are
		return av.IsValid() == bv.IsValid()
	}
	if av.Type() != bv.Type() {
		return false
	}

	switch av.Kind() {
	case reflect.Slice, reflect.Array:
		if av.Kind() == reflect.Slice && (av.IsNil() != bv.IsNil()) {
			return false
		}
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !equalValue(av.Index(i), bv.Index(i)) {
				return false
			}
		}
		return true
	default:
		return equalValue(av, bv)
	}
}

// equalValue compares two reflect values by strict equality, falling back
// to deep equality for non-comparable dynamic types.
func equalValue(a, b reflect.Value) bool {
	if a.Comparable() && b.Comparable() {
		return a.Equal(b)
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}
