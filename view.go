package statekit

// View is an immutable snapshot of a store: the store's name paired with a
// state value.
//
// Views are the values handed to listeners and equality predicates. A view
// holds exactly one named slot, fixed when the store is created; the slot is
// never renamed and never gains siblings.
type View[S any] struct {
	name  string
	state S
}

// Name returns the name of the store the view was taken from.
func (v View[S]) Name() string {
	return v.name
}

// State returns the state value captured by the view.
func (v View[S]) State() S {
	return v.state
}

// Get addresses the view's state by store name.
//
// It returns the state and true when name matches the view's store name,
// and the zero value and false otherwise. Most callers can use [View.State]
// directly; Get exists for consumers that hold views from several stores
// and route by name.
func (v View[S]) Get(name string) (S, bool) {
	if name != v.name {
		var zero S
		return zero, false
	}
	return v.state, true
}
