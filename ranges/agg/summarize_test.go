package agg

import (
	"testing"

	"github.com/rangelab/bio/ranges"
	"github.com/stretchr/testify/require"
)

func mkColl(t *testing.T, intervals []ranges.Interval, cols ...ranges.Column) *ranges.Collection {
	t.Helper()
	c, err := ranges.New(intervals)
	require.NoError(t, err)
	for _, col := range cols {
		c, err = c.AddColumn(col)
		require.NoError(t, err)
	}
	return c
}

func iv(seqname string, start, end ranges.PosType) ranges.Interval {
	return ranges.Interval{Seqname: seqname, Start: start, End: end, Strand: ranges.StrandNone}
}

func testColl(t *testing.T) *ranges.Collection {
	return mkColl(t, []ranges.Interval{
		iv("chr1", 1, 10),   // gene a
		iv("chr1", 21, 25),  // gene a
		iv("chr1", 40, 49),  // gene b
		iv("chr2", 1, 100),  // gene b
		iv("chr2", 200, 200), // gene a
	},
		ranges.StringColumn("gene", []string{"a", "a", "b", "b", "a"}),
		ranges.IntColumn("reads", []int64{4, 6, 10, 2, 3}),
		ranges.FloatColumn("score", []float64{0.5, 1.5, 2.0, 4.0, 1.0}),
	)
}

func TestSummarizeByMetadata(t *testing.T) {
	g, err := testColl(t).GroupBy("gene")
	require.NoError(t, err)
	tab, err := Summarize(g,
		Count("n"),
		Sum("reads_total", "reads"),
		Mean("score_mean", "score"),
		Median("score_median", "score"),
		WidthSum("bases"),
	)
	require.NoError(t, err)
	require.Equal(t, 2, tab.Len())

	gene, found := tab.Column("gene")
	require.True(t, found)
	require.Equal(t, []string{"a", "b"}, gene.Strings())

	n, _ := tab.Column("n")
	require.Equal(t, []int64{3, 2}, n.Ints())
	reads, _ := tab.Column("reads_total")
	require.Equal(t, []int64{13, 12}, reads.Ints())
	mean, _ := tab.Column("score_mean")
	require.InDelta(t, 1.0, mean.Floats()[0], 1e-12)
	require.InDelta(t, 3.0, mean.Floats()[1], 1e-12)
	median, _ := tab.Column("score_median")
	require.Equal(t, 1.0, median.Floats()[0])
	bases, _ := tab.Column("bases")
	require.Equal(t, []int64{16, 110}, bases.Ints())
}

func TestSummarizeBySeqname(t *testing.T) {
	g, err := testColl(t).GroupBy("seqnames")
	require.NoError(t, err)
	tab, err := Summarize(g, Count("n"), Concat("genes", "gene", ","))
	require.NoError(t, err)

	seqnames, _ := tab.Column("seqnames")
	require.Equal(t, []string{"chr1", "chr2"}, seqnames.Strings())
	n, _ := tab.Column("n")
	require.Equal(t, []int64{3, 2}, n.Ints())
	genes, _ := tab.Column("genes")
	require.Equal(t, []string{"a,a,b", "b,a"}, genes.Strings())
}

func TestSummarizeCompositeKey(t *testing.T) {
	g, err := testColl(t).GroupBy("seqnames", "gene")
	require.NoError(t, err)
	tab, err := Summarize(g, Count("n"))
	require.NoError(t, err)
	require.Equal(t, 4, tab.Len())

	seqnames, _ := tab.Column("seqnames")
	genes, _ := tab.Column("gene")
	n, _ := tab.Column("n")
	// First-appearance order of (seqnames, gene) pairs.
	require.Equal(t, []string{"chr1", "chr1", "chr2", "chr2"}, seqnames.Strings())
	require.Equal(t, []string{"a", "b", "b", "a"}, genes.Strings())
	require.Equal(t, []int64{2, 1, 1, 1}, n.Ints())
}

func TestWeightedWidthSum(t *testing.T) {
	c := mkColl(t, []ranges.Interval{
		iv("chr1", 1, 10),  // width 10
		iv("chr1", 11, 15), // width 5
	},
		ranges.StringColumn("bin", []string{"x", "x"}),
		ranges.IntColumn("score", []int64{2, 3}),
	)
	g, err := c.GroupBy("bin")
	require.NoError(t, err)
	tab, err := Summarize(g, WeightedWidthSum("mass", "score"))
	require.NoError(t, err)
	mass, _ := tab.Column("mass")
	require.Equal(t, []int64{35}, mass.Ints())
}

func TestFirstAndRevmap(t *testing.T) {
	g, err := testColl(t).GroupBy("gene")
	require.NoError(t, err)
	tab, err := Summarize(g, First("first_reads", "reads"), Revmap("rows"))
	require.NoError(t, err)
	first, _ := tab.Column("first_reads")
	require.Equal(t, []int64{4, 10}, first.Ints())
	rows, _ := tab.Column("rows")
	require.Equal(t, [][]int64{{0, 1, 4}, {2, 3}}, rows.IntLists())
}

func TestSummarizeErrors(t *testing.T) {
	g, err := testColl(t).GroupBy("gene")
	require.NoError(t, err)

	_, err = Summarize(g, Sum("x", "nope"))
	require.ErrorIs(t, err, ranges.ErrUnknownColumn)

	_, err = Summarize(g, Sum("x", "gene"))
	require.ErrorIs(t, err, ranges.ErrColumnMismatch)

	_, err = Summarize(g, Mean("x", "gene"))
	require.ErrorIs(t, err, ranges.ErrColumnMismatch)
}

func TestMedianEvenGroup(t *testing.T) {
	c := mkColl(t, []ranges.Interval{
		iv("chr1", 1, 1),
		iv("chr1", 2, 2),
		iv("chr1", 3, 3),
		iv("chr1", 4, 4),
	},
		ranges.StringColumn("bin", []string{"x", "x", "x", "x"}),
		ranges.FloatColumn("v", []float64{1, 2, 3, 4}),
	)
	g, err := c.GroupBy("bin")
	require.NoError(t, err)
	tab, err := Summarize(g, Median("med", "v"))
	require.NoError(t, err)
	med, _ := tab.Column("med")
	require.Equal(t, 2.0, med.Floats()[0])
}
