package algebra

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/rangelab/bio/ranges"
	"github.com/rangelab/bio/ranges/agg"
	"github.com/stretchr/testify/require"
)

func TestDisjoinBreakpoints(t *testing.T) {
	c := coll(t, iv("chr1", 1, 10), iv("chr1", 5, 15))
	got, err := Disjoin(c, DisjoinOpts{Reducers: []agg.Reducer{agg.Count("n")}})
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	expect.EQ(t, got.Row(0), iv("chr1", 1, 4))
	expect.EQ(t, got.Row(1), iv("chr1", 5, 10))
	expect.EQ(t, got.Row(2), iv("chr1", 11, 15))
	n, _ := got.Column("n")
	expect.EQ(t, n.Ints(), []int64{1, 2, 1})
}

func TestDisjoinMatchesReduceUnion(t *testing.T) {
	c := coll(t,
		iv("chr1", 1, 10),
		iv("chr1", 5, 25),
		iv("chr1", 20, 30),
		iv("chr1", 50, 60),
		iv("chr2", 3, 9),
	)
	disjoined, err := Disjoin(c, DisjoinOpts{})
	require.NoError(t, err)
	reduced, err := Reduce(c, ReduceOpts{})
	require.NoError(t, err)

	// No two disjoin outputs overlap.
	for i := 0; i < disjoined.Len(); i++ {
		for j := i + 1; j < disjoined.Len(); j++ {
			expect.False(t, disjoined.Row(i).Overlaps(disjoined.Row(j)),
				"%v overlaps %v", disjoined.Row(i), disjoined.Row(j))
		}
	}
	// Reducing the disjoint pieces restores the reduced union.
	rejoined, err := Reduce(disjoined, ReduceOpts{})
	require.NoError(t, err)
	expect.EQ(t, rejoined.Intervals(), reduced.Intervals())
}

func TestDisjoinSkipsZeroWidth(t *testing.T) {
	c := coll(t, iv("chr1", 1, 10), iv("chr1", 5, 4))
	got, err := Disjoin(c, DisjoinOpts{})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	expect.EQ(t, got.Row(0), iv("chr1", 1, 10))
}

func TestDisjoinStrands(t *testing.T) {
	c := coll(t,
		stranded("chr1", 1, 10, ranges.StrandPlus),
		stranded("chr1", 5, 15, ranges.StrandMinus),
	)
	got, err := Disjoin(c, DisjoinOpts{})
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	// Pieces covered by a single input keep its strand; the shared piece
	// degrades to unstranded.
	expect.EQ(t, got.Row(0), stranded("chr1", 1, 4, ranges.StrandPlus))
	expect.EQ(t, got.Row(1), iv("chr1", 5, 10))
	expect.EQ(t, got.Row(2), stranded("chr1", 11, 15, ranges.StrandMinus))

	_, err = Disjoin(c, DisjoinOpts{StrandPolicy: StrandStrict})
	require.ErrorIs(t, err, ranges.ErrMixedStrand)
}
