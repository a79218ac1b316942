package algebra

import (
	"sort"

	"github.com/rangelab/bio/ranges"
)

// This file represents a disjoint interval-union as a sorted []PosType of
// alternating boundaries: element 2k is the (1-based) start of interval #k
// and element 2k+1 is its end+1.  For example the reduced union of
//   [5, 15]
//   [7, 17]
//   [20, 25]
// is [5, 17] U [20, 25], stored as {5, 18, 20, 26}.  Parity of a binary
// search position then answers containment, and UnionScanner iterates the
// runs in order.

// UnionEndpoints is the boundary sequence of a disjoint interval-union on
// one sequence.
type UnionEndpoints []ranges.PosType

// searchPos returns the index of x in a, or the position where x would be
// inserted if absent.  Same as sort.Search specialized to PosType.
func searchPos(a []ranges.PosType, x ranges.PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// expsearchPos performs exponential search starting at idx: it checks
// a[idx], a[idx+1], a[idx+3], a[idx+7], ..., then finishes with binary
// search.  It beats searchPos when positions are visited in increasing
// order.
func expsearchPos(a []ranges.PosType, x ranges.PosType, idx int) int {
	nextIncr := 1
	startIdx := idx
	endIdx := len(a)
	for idx < endIdx {
		if a[idx] >= x {
			endIdx = idx
			break
		}
		startIdx = idx + 1
		idx += nextIncr
		nextIncr *= 2
	}
	for startIdx < endIdx {
		midIdx := int(uint(startIdx+endIdx) >> 1)
		if a[midIdx] >= x {
			endIdx = midIdx
		} else {
			startIdx = midIdx + 1
		}
	}
	return startIdx
}

// unionFromRuns builds the boundary sequence from already-reduced runs in
// ascending order.  Zero-width runs contribute nothing.
func unionFromRuns(starts, ends []ranges.PosType) UnionEndpoints {
	u := make(UnionEndpoints, 0, 2*len(starts))
	for i := range starts {
		if ends[i] < starts[i] {
			continue
		}
		u = append(u, starts[i], ends[i]+1)
	}
	return u
}

// Contains returns whether pos lies inside the union.
func (u UnionEndpoints) Contains(pos ranges.PosType) bool {
	return searchPos(u, pos+1)&1 == 1
}

// UnionScanner iterates the runs of a union in ascending order.
type UnionScanner struct {
	endpoints UnionEndpoints
	idx       int
}

// NewUnionScanner returns a scanner positioned before the first run.
func NewUnionScanner(u UnionEndpoints) UnionScanner {
	return UnionScanner{endpoints: u}
}

// Scan stores the next run's closed boundaries in *start and *end, returning
// false when the runs are exhausted.
func (s *UnionScanner) Scan(start, end *ranges.PosType) bool {
	if s.idx >= len(s.endpoints) {
		return false
	}
	*start = s.endpoints[s.idx]
	*end = s.endpoints[s.idx+1] - 1
	s.idx += 2
	return true
}

// Advance moves the scanner to the first run ending at or after pos.  It is
// cheap when positions are nondecreasing.
func (s *UnionScanner) Advance(pos ranges.PosType) {
	// A run ending at pos-1 has stored endpoint pos, so search past it.
	s.idx = expsearchPos(s.endpoints, pos+1, s.idx) & ^1
}
