package cursor

import (
	"cmp"
	"slices"
)

// CursorSet holds the selections of one view, sorted by start offset and
// never overlapping. Index 0 is the primary selection.
type CursorSet struct {
	selections []Selection
}

// NewCursorSetAt creates a cursor set with a single cursor at offset.
func NewCursorSetAt(offset CharOffset) *CursorSet {
	return &CursorSet{selections: []Selection{NewCursorSelection(offset)}}
}

// NewCursorSetFromSlice creates a normalized cursor set from selections.
// An empty slice yields a cursor at offset 0.
func NewCursorSetFromSlice(selections []Selection) *CursorSet {
	cs := &CursorSet{}
	cs.SetAll(selections)
	return cs
}

// Primary returns the primary selection.
func (cs *CursorSet) Primary() Selection {
	return cs.selections[0]
}

// All returns a copy of the selections.
func (cs *CursorSet) All() []Selection {
	return slices.Clone(cs.selections)
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// SetAll replaces the selections.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		return
	}
	cs.selections = slices.Clone(sels)
	cs.normalize()
}

// Clamp keeps every selection inside [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset CharOffset) {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(maxOffset)
	}
	cs.normalize()
}

// normalize sorts the selections and merges overlapping ones. Cursors at
// the same offset collapse into one; a cursor on a selection's edge is
// absorbed by the selection.
func (cs *CursorSet) normalize() {
	if len(cs.selections) < 2 {
		return
	}

	slices.SortStableFunc(cs.selections, func(a, b Selection) int {
		if c := cmp.Compare(a.Start(), b.Start()); c != 0 {
			return c
		}
		return cmp.Compare(b.End(), a.End())
	})

	out := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &out[len(out)-1]
		switch {
		case sel.Start() < last.End():
			*last = last.Merge(sel)
		case sel.Start() == last.End() && last.IsEmpty():
			*last = sel
		case sel.Start() == last.End() && sel.IsEmpty():
			// absorbed
		default:
			out = append(out, sel)
		}
	}
	cs.selections = out
}
