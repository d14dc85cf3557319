// Package data holds the mutable source of truth for each entity.
//
// Every attribute write goes through Set, which bumps a version counter when
// the value actually changes. Report generators compare versions to decide
// whether a cached report is still valid.
package data

// ChangeFunc is notified with the attribute name after a write changes it.
type ChangeFunc func(field string)

// Source is what a report generator needs from an entity's data.
type Source interface {
	Version() uint64
	IsDirty() bool
	AcceptChanges()
}

// Tracker is embedded in every entity data type.
type Tracker struct {
	version     uint64
	accepted    uint64
	subscribers []ChangeFunc
}

// Version increases by one for every effective attribute change.
func (t *Tracker) Version() uint64 {
	return t.version
}

// IsDirty reports whether anything changed since the last AcceptChanges.
func (t *Tracker) IsDirty() bool {
	return t.version != t.accepted
}

// AcceptChanges clears the dirty flag. Attribute values are untouched.
func (t *Tracker) AcceptChanges() {
	t.accepted = t.version
}

func (t *Tracker) Subscribe(fn ChangeFunc) {
	t.subscribers = append(t.subscribers, fn)
}

func (t *Tracker) changed(field string) {
	t.version++
	for _, fn := range t.subscribers {
		fn(field)
	}
}

// Set assigns value to *dst. A write of the current value is a no-op: the
// version stays put and no subscriber is notified. It reports whether the
// value changed.
func Set[T comparable](t *Tracker, field string, dst *T, value T) bool {
	if *dst == value {
		return false
	}
	*dst = value
	t.changed(field)
	return true
}
