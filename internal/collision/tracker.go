// Package collision tracks xxHash64 collisions between VSF section names,
// adapted from the metric-name collision tracker the teacher uses while
// encoding a blob. A collision between two distinct section names
// hashing to the same 64-bit value is rare but must not corrupt the
// index: when detected, the index answers every lookup from its direct
// name map instead of trusting the hash alone.
package collision

import (
	"github.com/nspiker/vsf/errs"
)

// Tracker tracks section names and detects hash collisions while a
// container.Index is being built.
type Tracker struct {
	names        map[uint64]string // hash -> first name seen for that hash
	orderedNames []string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
	}
}

// Track records a section name and its hash. It returns ErrInvalidData
// for an empty name and ErrDuplicateSection when the exact same name
// was already tracked (a duplicate section name, always a builder
// error). A collision between two distinct names
// sharing a hash sets HasCollision() instead of failing, since the index
// can still disambiguate by name.
func (t *Tracker) Track(name string, h uint64) error {
	if name == "" {
		return errs.ErrInvalidData
	}

	if existing, ok := t.names[h]; ok {
		if existing == name {
			return errs.ErrDuplicateSection
		}
		t.hasCollision = true
		return nil
	}

	t.names[h] = name
	t.orderedNames = append(t.orderedNames, name)

	return nil
}

// HasCollision reports whether two distinct section names have hashed to
// the same value since the tracker was created or last Reset.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of distinct section names tracked.
func (t *Tracker) Count() int {
	return len(t.orderedNames)
}

// Reset clears all tracked names, keeping the underlying map's capacity.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
	t.orderedNames = t.orderedNames[:0]
	t.hasCollision = false
}
