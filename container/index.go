package container

import (
	"iter"

	"github.com/nspiker/vsf/errs"
	"github.com/nspiker/vsf/internal/collision"
	"github.com/nspiker/vsf/internal/hash"
)

// Index maps section names to their Label for O(1) lookup, adapted from
// the teacher's metric-ID hash index: names are looked up by xxHash64
// first, falling back to a direct name scan only when a hash collision
// has been detected among the labels actually present (spec §4.5's
// "Seeks are O(1) — no scan required past the header" requirement).
type Index struct {
	byHash   map[uint64]*Label
	byName   map[string]*Label
	tracker  *collision.Tracker
	ordered  []*Label
}

// BuildIndex builds a name index over a header's label table.
func BuildIndex(labels []*Label) (*Index, error) {
	idx := &Index{
		byHash:  make(map[uint64]*Label, len(labels)),
		byName:  make(map[string]*Label, len(labels)),
		tracker: collision.NewTracker(),
		ordered: labels,
	}
	for _, l := range labels {
		h := hash.SectionName(l.Name)
		if err := idx.tracker.Track(l.Name, h); err != nil {
			return nil, err
		}
		idx.byHash[h] = l
		idx.byName[l.Name] = l
	}
	return idx, nil
}

// Lookup returns the label for name, or ErrLabelNotFound. If a hash
// collision was detected while building the index, lookup falls back to
// the direct name map instead of trusting the hash map alone.
func (idx *Index) Lookup(name string) (*Label, error) {
	if idx.tracker.HasCollision() {
		if l, ok := idx.byName[name]; ok {
			return l, nil
		}
		return nil, errs.ErrLabelNotFound
	}

	h := hash.SectionName(name)
	if l, ok := idx.byHash[h]; ok && l.Name == name {
		return l, nil
	}
	return nil, errs.ErrLabelNotFound
}

// Labels returns an iterator over every label in the header, in
// declaration order.
func (idx *Index) Labels() iter.Seq[*Label] {
	return func(yield func(*Label) bool) {
		for _, l := range idx.ordered {
			if !yield(l) {
				return
			}
		}
	}
}

// Len returns the number of labels in the index.
func (idx *Index) Len() int { return len(idx.ordered) }
