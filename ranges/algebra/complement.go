package algebra

import (
	"fmt"

	"github.com/rangelab/bio/ranges"
)

// Complement returns the gaps not covered by any input interval, per
// sequence of the dictionary, bounded by [1, length].  Leading and trailing
// gaps are included, and sequences of the dictionary without any input
// interval yield one full-length gap.  Strand and metadata do not survive
// complementation; the output is unstranded and column-free.
func Complement(c *ranges.Collection, dict *ranges.SeqDict) (*ranges.Collection, error) {
	if dict == nil {
		dict = c.Dict()
	}
	if dict == nil {
		return nil, fmt.Errorf("%w: complement requires a sequence dictionary", ranges.ErrUnknownSequence)
	}
	reduced, err := Reduce(c, ReduceOpts{})
	if err != nil {
		return nil, err
	}

	// Per-sequence union boundaries of the reduced cover.
	unions := make(map[string]UnionEndpoints, dict.Len())
	seqnames := reduced.Seqnames()
	starts := reduced.Starts()
	ends := reduced.Ends()
	for i := 0; i < reduced.Len(); i++ {
		if _, found := dict.Lookup(seqnames[i]); !found {
			return nil, fmt.Errorf("%w: %s", ranges.ErrUnknownSequence, seqnames[i])
		}
	}
	lo := 0
	for hi := 1; hi <= reduced.Len(); hi++ {
		if hi == reduced.Len() || seqnames[hi] != seqnames[lo] {
			unions[seqnames[lo]] = unionFromRuns(starts[lo:hi], ends[lo:hi])
			lo = hi
		}
	}

	var outSeqnames []string
	var outStarts, outEnds []ranges.PosType
	gap := func(seqname string, start, end ranges.PosType) {
		if end < start {
			return
		}
		outSeqnames = append(outSeqnames, seqname)
		outStarts = append(outStarts, start)
		outEnds = append(outEnds, end)
	}
	for _, seqname := range dict.Names() {
		length, _ := dict.Lookup(seqname)
		if length == 0 {
			continue
		}
		cursor := ranges.PosType(1)
		scanner := NewUnionScanner(unions[seqname])
		var runStart, runEnd ranges.PosType
		for scanner.Scan(&runStart, &runEnd) {
			if runEnd > length {
				runEnd = length
			}
			gap(seqname, cursor, runStart-1)
			cursor = runEnd + 1
		}
		gap(seqname, cursor, length)
	}
	out, err := ranges.NewColumnar(outSeqnames, outStarts, outEnds, nil)
	if err != nil {
		return nil, err
	}
	return out.SetDict(dict, ranges.ValidateStrict)
}
