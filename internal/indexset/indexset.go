// Package indexset provides an immutable, sorted set of non-negative page
// indexes. Sets are values: every operation returns a new set and never
// aliases the receiver's storage, so sets can be handed to observers without
// exposing the owner's state.
package indexset

import (
	"sort"
	"strconv"
	"strings"
)

// Set is an immutable sorted set of ints. The zero value is the empty set.
type Set struct {
	idx []int // sorted, unique
}

// Of returns a set holding the given indexes.
func Of(indexes ...int) Set {
	if len(indexes) == 0 {
		return Set{}
	}
	idx := make([]int, len(indexes))
	copy(idx, indexes)
	sort.Ints(idx)
	out := idx[:1]
	for _, i := range idx[1:] {
		if i != out[len(out)-1] {
			out = append(out, i)
		}
	}
	return Set{idx: out}
}

// Range returns the set [lo, hi). It is empty if hi <= lo.
func Range(lo, hi int) Set {
	if hi <= lo {
		return Set{}
	}
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return Set{idx: idx}
}

// Len returns the number of indexes in the set.
func (s Set) Len() int { return len(s.idx) }

// Empty reports whether the set has no indexes.
func (s Set) Empty() bool { return len(s.idx) == 0 }

// Contains reports whether i is in the set.
func (s Set) Contains(i int) bool {
	n := sort.SearchInts(s.idx, i)
	return n < len(s.idx) && s.idx[n] == i
}

// First returns the smallest index, or false if the set is empty.
func (s Set) First() (int, bool) {
	if len(s.idx) == 0 {
		return 0, false
	}
	return s.idx[0], true
}

// Last returns the largest index, or false if the set is empty.
func (s Set) Last() (int, bool) {
	if len(s.idx) == 0 {
		return 0, false
	}
	return s.idx[len(s.idx)-1], true
}

// Slice returns the indexes in ascending order. The result is a copy.
func (s Set) Slice() []int {
	out := make([]int, len(s.idx))
	copy(out, s.idx)
	return out
}

// Union returns the indexes in either set.
func (s Set) Union(o Set) Set {
	out := make([]int, 0, len(s.idx)+len(o.idx))
	i, j := 0, 0
	for i < len(s.idx) && j < len(o.idx) {
		switch {
		case s.idx[i] < o.idx[j]:
			out = append(out, s.idx[i])
			i++
		case s.idx[i] > o.idx[j]:
			out = append(out, o.idx[j])
			j++
		default:
			out = append(out, s.idx[i])
			i++
			j++
		}
	}
	out = append(out, s.idx[i:]...)
	out = append(out, o.idx[j:]...)
	if len(out) == 0 {
		return Set{}
	}
	return Set{idx: out}
}

// Subtract returns the indexes in s that are not in o.
func (s Set) Subtract(o Set) Set {
	var out []int
	for _, i := range s.idx {
		if !o.Contains(i) {
			out = append(out, i)
		}
	}
	return Set{idx: out}
}

// Intersect returns the indexes in both sets.
func (s Set) Intersect(o Set) Set {
	var out []int
	for _, i := range s.idx {
		if o.Contains(i) {
			out = append(out, i)
		}
	}
	return Set{idx: out}
}

// Clamp returns the indexes in [lo, hi).
func (s Set) Clamp(lo, hi int) Set {
	var out []int
	for _, i := range s.idx {
		if i >= lo && i < hi {
			out = append(out, i)
		}
	}
	return Set{idx: out}
}

// Equal reports whether both sets hold the same indexes.
func (s Set) Equal(o Set) bool {
	if len(s.idx) != len(o.idx) {
		return false
	}
	for i := range s.idx {
		if s.idx[i] != o.idx[i] {
			return false
		}
	}
	return true
}

// Diff returns the indexes added to and removed from prev to get to s.
func (s Set) Diff(prev Set) (added, removed Set) {
	return s.Subtract(prev), prev.Subtract(s)
}

func (s Set) String() string {
	parts := make([]string, len(s.idx))
	for i, n := range s.idx {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
