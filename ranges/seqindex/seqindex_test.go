package seqindex

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/rangelab/bio/ranges"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, intervals ...ranges.Interval) *Index {
	t.Helper()
	c, err := ranges.New(intervals)
	require.NoError(t, err)
	return New(c)
}

func TestOverlapping(t *testing.T) {
	idx := buildIndex(t,
		ranges.Interval{Seqname: "chr1", Start: 100, End: 200, Strand: ranges.StrandPlus},  // 0
		ranges.Interval{Seqname: "chr1", Start: 150, End: 250, Strand: ranges.StrandMinus}, // 1
		ranges.Interval{Seqname: "chr1", Start: 300, End: 400, Strand: ranges.StrandNone},  // 2
		ranges.Interval{Seqname: "chr2", Start: 100, End: 200, Strand: ranges.StrandPlus},  // 3
		ranges.Interval{Seqname: "chr1", Start: 180, End: 179, Strand: ranges.StrandNone},  // 4 zero-width
	)
	tests := []struct {
		query ranges.Interval
		opts  Query
		want  []int
	}{
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 170, Strand: ranges.StrandNone}, Query{}, []int{0, 1}},
		{ranges.Interval{Seqname: "chr1", Start: 1, End: 50, Strand: ranges.StrandNone}, Query{}, nil},
		{ranges.Interval{Seqname: "chr3", Start: 1, End: 500, Strand: ranges.StrandNone}, Query{}, nil},
		{ranges.Interval{Seqname: "chr1", Start: 1, End: 500, Strand: ranges.StrandNone}, Query{}, []int{0, 1, 2}},
		// Zero-width query matches nothing.
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 159, Strand: ranges.StrandNone}, Query{}, nil},
		// Directed: only matching strands.
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 170, Strand: ranges.StrandPlus}, Query{Directed: true}, []int{0}},
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 170, Strand: ranges.StrandNone}, Query{Directed: true}, nil},
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 170, Strand: ranges.StrandNone},
			Query{Directed: true, MatchUnstranded: true}, []int{0, 1}},
		// Within: subject must contain the query.
		{ranges.Interval{Seqname: "chr1", Start: 160, End: 220, Strand: ranges.StrandNone}, Query{Within: true}, []int{1}},
	}
	for _, test := range tests {
		expect.EQ(t, idx.Overlapping(test.query, test.opts), test.want, "query %v", test.query)
	}
}

func TestOverlappingOrder(t *testing.T) {
	// Hits come back in collection row order regardless of position order.
	idx := buildIndex(t,
		ranges.Interval{Seqname: "chr1", Start: 500, End: 600, Strand: ranges.StrandNone}, // 0
		ranges.Interval{Seqname: "chr1", Start: 100, End: 700, Strand: ranges.StrandNone}, // 1
		ranges.Interval{Seqname: "chr1", Start: 550, End: 560, Strand: ranges.StrandNone}, // 2
	)
	got := idx.Overlapping(ranges.Interval{Seqname: "chr1", Start: 555, End: 556, Strand: ranges.StrandNone}, Query{})
	expect.EQ(t, got, []int{0, 1, 2})
}

func TestNearest(t *testing.T) {
	idx := buildIndex(t,
		ranges.Interval{Seqname: "chr1", Start: 100, End: 200, Strand: ranges.StrandPlus},  // 0
		ranges.Interval{Seqname: "chr1", Start: 400, End: 500, Strand: ranges.StrandMinus}, // 1
		ranges.Interval{Seqname: "chr2", Start: 1, End: 50, Strand: ranges.StrandNone},     // 2
	)
	tests := []struct {
		query ranges.Interval
		opts  Query
		want  []int
	}{
		// Overlap wins.
		{ranges.Interval{Seqname: "chr1", Start: 150, End: 160, Strand: ranges.StrandNone}, Query{}, []int{0}},
		// Closer to row 0.
		{ranges.Interval{Seqname: "chr1", Start: 210, End: 220, Strand: ranges.StrandNone}, Query{}, []int{0}},
		// Closer to row 1.
		{ranges.Interval{Seqname: "chr1", Start: 380, End: 390, Strand: ranges.StrandNone}, Query{}, []int{1}},
		// Equidistant: both.
		{ranges.Interval{Seqname: "chr1", Start: 291, End: 309, Strand: ranges.StrandNone}, Query{}, []int{0, 1}},
		// Other sequences never qualify.
		{ranges.Interval{Seqname: "chr3", Start: 1, End: 10, Strand: ranges.StrandNone}, Query{}, nil},
		// Directed nearest skips strand-incompatible rows even when closer.
		{ranges.Interval{Seqname: "chr1", Start: 210, End: 220, Strand: ranges.StrandMinus}, Query{Directed: true}, []int{1}},
	}
	for _, test := range tests {
		expect.EQ(t, idx.Nearest(test.query, test.opts), test.want, "query %v", test.query)
	}
}

func TestNearestZeroWidth(t *testing.T) {
	idx := buildIndex(t,
		ranges.Interval{Seqname: "chr1", Start: 5, End: 4, Strand: ranges.StrandNone},   // 0 zero-width
		ranges.Interval{Seqname: "chr1", Start: 50, End: 60, Strand: ranges.StrandNone}, // 1
	)
	tests := []struct {
		query ranges.Interval
		want  []int
	}{
		// A coincident zero-width row is at distance 0 on both sides of a
		// zero-width query; it is still reported once.
		{ranges.Interval{Seqname: "chr1", Start: 5, End: 4, Strand: ranges.StrandNone}, []int{0}},
		// Zero-width rows participate in nearest even though they never
		// overlap.
		{ranges.Interval{Seqname: "chr1", Start: 1, End: 2, Strand: ranges.StrandNone}, []int{0}},
		{ranges.Interval{Seqname: "chr1", Start: 40, End: 41, Strand: ranges.StrandNone}, []int{1}},
	}
	for _, test := range tests {
		expect.EQ(t, idx.Nearest(test.query, Query{}), test.want, "query %v", test.query)
	}
}

func TestIndexImmutableSnapshot(t *testing.T) {
	c, err := ranges.New([]ranges.Interval{
		{Seqname: "chr1", Start: 1, End: 10, Strand: ranges.StrandNone},
	})
	require.NoError(t, err)
	idx := New(c)
	expect.EQ(t, idx.Collection(), c)

	// Queries on a shared index are read-only; run a few concurrently.
	done := make(chan bool)
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				idx.Overlapping(ranges.Interval{Seqname: "chr1", Start: 5, End: 6, Strand: ranges.StrandNone}, Query{})
			}
			done <- true
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
