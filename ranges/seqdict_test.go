package ranges

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestNewSeqDict(t *testing.T) {
	d, err := NewSeqDict([]string{"chr1", "chr2"}, []PosType{1000, 2000})
	require.NoError(t, err)
	expect.EQ(t, d.Len(), 2)
	length, found := d.Lookup("chr2")
	expect.True(t, found)
	expect.EQ(t, length, PosType(2000))
	_, found = d.Lookup("chrX")
	expect.False(t, found)

	_, err = NewSeqDict([]string{"chr1", "chr1"}, []PosType{10, 10})
	expect.HasSubstr(t, err.Error(), "duplicate")

	_, err = NewSeqDict([]string{"chr1"}, []PosType{10, 20})
	require.Error(t, err)
}

func TestSeqDictFromSAMHeader(t *testing.T) {
	chr1, _ := sam.NewReference("chr1", "", "", 1000, nil, nil)
	chr2, _ := sam.NewReference("chr2", "", "", 2000, nil, nil)
	header, err := sam.NewHeader(nil, []*sam.Reference{chr1, chr2})
	require.NoError(t, err)

	d, err := SeqDictFromSAMHeader(header)
	require.NoError(t, err)
	expect.EQ(t, d.Names(), []string{"chr1", "chr2"})
	length, _ := d.Lookup("chr1")
	expect.EQ(t, length, PosType(1000))
}
