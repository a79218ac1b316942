/*Package seqindex builds static per-sequence overlap indices over a
  ranges.Collection.  An Index is immutable once built and may be shared
  across goroutines without locking; when the parent collection changes, a
  new Index must be built.
*/
package seqindex

import (
	"sort"

	"github.com/biogo/store/interval"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/rangelab/bio/ranges"
)

// Query selects the overlap predicate variant.
type Query struct {
	// Directed requires matching strands.
	Directed bool
	// MatchUnstranded lets unstranded rows match any strand in directed
	// mode.  Ignored when Directed is unset.
	MatchUnstranded bool
	// Within restricts matches to subject intervals that fully contain the
	// query.
	Within bool
}

// treeEntry is one stored interval in half-open tree coordinates.
type treeEntry struct {
	start, end int // [start, end), 0 <= start < end
	row        int
}

func (e treeEntry) Overlap(b interval.IntRange) bool {
	return e.end > b.Start && e.start < b.End
}
func (e treeEntry) Range() interval.IntRange {
	return interval.IntRange{Start: e.start, End: e.end}
}
func (e treeEntry) ID() uintptr { return uintptr(e.row) }

// treeQuery is a query range in half-open tree coordinates.
type treeQuery struct {
	start, end int
}

func (q treeQuery) Overlap(b interval.IntRange) bool {
	return q.end > b.Start && q.start < b.End
}

// seqEntries holds the index of a single sequence.
type seqEntries struct {
	tree *interval.IntTree
	// rowsByStart/rowsByEnd order this sequence's rows (zero-width rows
	// included) for nearest-neighbor search.
	rowsByStart []int
	rowsByEnd   []int
}

// Index answers overlap and nearest-neighbor queries against a snapshot of
// one collection.
type Index struct {
	coll  *ranges.Collection
	bySeq map[string]*seqEntries
}

// New builds an index over c.  Per-sequence trees are built in parallel.
func New(c *ranges.Collection) *Index {
	x := &Index{coll: c, bySeq: make(map[string]*seqEntries)}
	seqnames := c.Seqnames()
	starts := c.Starts()
	ends := c.Ends()
	for row := range seqnames {
		e := x.bySeq[seqnames[row]]
		if e == nil {
			e = &seqEntries{tree: &interval.IntTree{}}
			x.bySeq[seqnames[row]] = e
		}
		e.rowsByStart = append(e.rowsByStart, row)
	}
	order := make([]string, 0, len(x.bySeq))
	for name := range x.bySeq {
		order = append(order, name)
	}
	sort.Strings(order)
	err := traverse.Each(len(order), func(i int) error {
		e := x.bySeq[order[i]]
		sort.SliceStable(e.rowsByStart, func(a, b int) bool {
			return starts[e.rowsByStart[a]] < starts[e.rowsByStart[b]]
		})
		e.rowsByEnd = append([]int{}, e.rowsByStart...)
		sort.SliceStable(e.rowsByEnd, func(a, b int) bool {
			return ends[e.rowsByEnd[a]] < ends[e.rowsByEnd[b]]
		})
		for _, row := range e.rowsByStart {
			if ends[row] < starts[row] {
				// Zero-width rows never overlap anything; keep them out of
				// the tree but in the nearest-neighbor orderings.
				continue
			}
			entry := treeEntry{start: int(starts[row]) - 1, end: int(ends[row]), row: row}
			if err := e.tree.Insert(entry, true); err != nil {
				return err
			}
		}
		e.tree.AdjustRanges()
		return nil
	})
	if err != nil {
		// Rows have unique IDs and validated ranges, so tree insertion
		// cannot fail.
		log.Panicf("seqindex: %v", err)
	}
	log.Debug.Printf("seqindex: indexed %d row(s) across %d sequence(s)", c.Len(), len(order))
	return x
}

// Collection returns the indexed collection snapshot.
func (x *Index) Collection() *ranges.Collection { return x.coll }

// Overlapping returns the rows overlapping q under the given query options,
// in the parent collection's row order.  A zero-width query matches nothing;
// an unknown sequence yields an empty result, not an error.
func (x *Index) Overlapping(q ranges.Interval, opts Query) []int {
	if q.ZeroWidth() {
		return nil
	}
	e := x.bySeq[q.Seqname]
	if e == nil {
		return nil
	}
	starts := x.coll.Starts()
	ends := x.coll.Ends()
	strands := x.coll.Strands()
	var hits []int
	e.tree.DoMatching(func(iv interval.IntInterface) bool {
		row := int(iv.ID())
		if opts.Directed && !strandsMatch(q.Strand, strands[row], opts.MatchUnstranded) {
			return false
		}
		if opts.Within && !(starts[row] <= q.Start && q.End <= ends[row]) {
			return false
		}
		hits = append(hits, row)
		return false
	}, treeQuery{start: int(q.Start) - 1, end: int(q.End)})
	sort.Ints(hits)
	return hits
}

// Nearest returns the rows nearest to q by genomic distance: the overlapping
// rows when any exist, otherwise all rows tied at the minimum distance.
// Rows on other sequences are never returned.
func (x *Index) Nearest(q ranges.Interval, opts Query) []int {
	if !q.ZeroWidth() {
		if hits := x.Overlapping(q, opts); len(hits) > 0 {
			return hits
		}
	}
	e := x.bySeq[q.Seqname]
	if e == nil {
		return nil
	}
	if opts.Directed {
		return x.nearestScan(q, e, opts)
	}
	starts := x.coll.Starts()
	ends := x.coll.Ends()

	// Closest following row: minimum start > q.End.
	nextDist := ranges.PosType(-1)
	i := sort.Search(len(e.rowsByStart), func(i int) bool {
		return starts[e.rowsByStart[i]] > q.End
	})
	if i < len(e.rowsByStart) {
		nextDist = starts[e.rowsByStart[i]] - q.End - 1
	}
	// Closest preceding row: maximum end < q.Start.
	prevDist := ranges.PosType(-1)
	j := sort.Search(len(e.rowsByEnd), func(j int) bool {
		return ends[e.rowsByEnd[j]] >= q.Start
	})
	if j > 0 {
		prevDist = q.Start - ends[e.rowsByEnd[j-1]] - 1
	}

	var hits []int
	if nextDist >= 0 && (prevDist < 0 || nextDist <= prevDist) {
		target := starts[e.rowsByStart[i]]
		for ; i < len(e.rowsByStart) && starts[e.rowsByStart[i]] == target; i++ {
			hits = append(hits, e.rowsByStart[i])
		}
	}
	if prevDist >= 0 && (nextDist < 0 || prevDist <= nextDist) {
		target := ends[e.rowsByEnd[j-1]]
		for ; j > 0 && ends[e.rowsByEnd[j-1]] == target; j-- {
			hits = append(hits, e.rowsByEnd[j-1])
		}
	}
	sort.Ints(hits)
	// A zero-width row tied on both sides of a zero-width query is collected
	// by both passes; report each row once.
	out := hits[:0]
	for k, row := range hits {
		if k == 0 || row != hits[k-1] {
			out = append(out, row)
		}
	}
	return out
}

// nearestScan is the strand-aware nearest path.  Binary search cannot be
// used here since the nearest strand-compatible row may not be the nearest
// row overall.
func (x *Index) nearestScan(q ranges.Interval, e *seqEntries, opts Query) []int {
	strands := x.coll.Strands()
	best := ranges.PosType(-1)
	var hits []int
	for _, row := range e.rowsByStart {
		if !strandsMatch(q.Strand, strands[row], opts.MatchUnstranded) {
			continue
		}
		d, ok := q.DistanceTo(x.coll.Row(row))
		if !ok {
			continue
		}
		switch {
		case best < 0 || d < best:
			best = d
			hits = append(hits[:0], row)
		case d == best:
			hits = append(hits, row)
		}
	}
	sort.Ints(hits)
	return hits
}

func strandsMatch(a, b ranges.Strand, matchUnstranded bool) bool {
	if a == b {
		return true
	}
	return matchUnstranded && (a == ranges.StrandNone || b == ranges.StrandNone)
}
