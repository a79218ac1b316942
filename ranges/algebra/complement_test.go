package algebra

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/rangelab/bio/ranges"
	"github.com/stretchr/testify/require"
)

func testDict(t *testing.T) *ranges.SeqDict {
	t.Helper()
	d, err := ranges.NewSeqDict([]string{"chr1", "chr2"}, []ranges.PosType{100, 50})
	require.NoError(t, err)
	return d
}

func TestComplement(t *testing.T) {
	c := coll(t, iv("chr1", 11, 20), iv("chr1", 18, 40), iv("chr1", 61, 70))
	got, err := Complement(c, testDict(t))
	require.NoError(t, err)
	expect.EQ(t, got.Intervals(), []ranges.Interval{
		iv("chr1", 1, 10),
		iv("chr1", 41, 60),
		iv("chr1", 71, 100),
		// chr2 has no intervals at all.
		iv("chr2", 1, 50),
	})
}

func TestComplementNoLeadingGap(t *testing.T) {
	c := coll(t, iv("chr1", 1, 100))
	got, err := Complement(c, testDict(t))
	require.NoError(t, err)
	expect.EQ(t, got.Intervals(), []ranges.Interval{iv("chr2", 1, 50)})
}

func TestComplementInvolution(t *testing.T) {
	c := coll(t, iv("chr1", 11, 20), iv("chr1", 30, 60), iv("chr2", 5, 10))
	dict := testDict(t)
	once, err := Complement(c, dict)
	require.NoError(t, err)
	twice, err := Complement(once, dict)
	require.NoError(t, err)
	reduced, err := Reduce(c, ReduceOpts{})
	require.NoError(t, err)
	expect.EQ(t, twice.Intervals(), reduced.Intervals())
}

func TestComplementUnknownSequence(t *testing.T) {
	c := coll(t, iv("chrX", 1, 10))
	_, err := Complement(c, testDict(t))
	require.ErrorIs(t, err, ranges.ErrUnknownSequence)

	_, err = Complement(c, nil)
	require.ErrorIs(t, err, ranges.ErrUnknownSequence)
}
