package statekit

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"different ints", 0, 1, false},
		{"equal strings", "up", "up", true},
		{"different strings", "up", "down", false},
		{"equal bools", false, false, true},
		{"different types", 1, "1", false},
		{"both nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"equal slices", []any{0, false}, []any{0, false}, true},
		{"slice element changed", []any{0, false}, []any{0, true}, false},
		{"slice length differs", []int{1}, []int{1, 2}, false},
		{"empty slices", []int{}, []int{}, true},
		{"nil and empty slice", []int(nil), []int{}, false},
		{"equal int slices", []int{1, 2}, []int{1, 2}, true},
		{"equal arrays", [2]int{1, 2}, [2]int{1, 2}, true},
		{"array element changed", [2]int{1, 2}, [2]int{1, 3}, false},
		{"equal structs", counter{Count: 1}, counter{Count: 1}, true},
		{"different structs", counter{Count: 1}, counter{Count: 2}, false},
		{"non-comparable elements", []any{[]int{1}}, []any{[]int{1}}, true},
		{"non-comparable elements differ", []any{[]int{1}}, []any{[]int{2}}, false},
		{"equal maps fall back to deep equality", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEqual_PointerIdentity(t *testing.T) {
	a := &counter{Count: 1}
	b := &counter{Count: 1}

	if !Equal(a, a) {
		t.Error("Equal(a, a) = false, want true for same pointer")
	}
	if Equal(a, b) {
		t.Error("Equal(a, b) = true, want false for distinct pointers (strict equality)")
	}
}
