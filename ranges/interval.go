package ranges

import (
	"fmt"
	"math"
)

// PosType is the type used to represent interval coordinates.  int32 should be
// wide enough for some time to come, since that's what BAM is limited to.
type PosType int32

// PosTypeMax is the maximum value that can be represented by a PosType.
const PosTypeMax = math.MaxInt32

// Strand is the orientation of an interval on its sequence.
type Strand byte

const (
	// StrandPlus marks the forward strand.
	StrandPlus Strand = '+'
	// StrandMinus marks the reverse strand.
	StrandMinus Strand = '-'
	// StrandNone marks an interval without strand information.
	StrandNone Strand = '*'
)

// Valid returns whether s is one of the three recognized strand values.
func (s Strand) Valid() bool {
	return s == StrandPlus || s == StrandMinus || s == StrandNone
}

// Interval is one genomic interval: a closed, 1-based region [Start, End] on
// a named sequence, with optional strand orientation.  A zero-width interval
// (e.g. an insertion point) is represented as End == Start - 1.
type Interval struct {
	Seqname string
	Start   PosType
	End     PosType
	Strand  Strand
}

// FromZeroBased converts an interval expressed in the BED convention
// (0-based, half-open) to the internal 1-based closed representation.
func FromZeroBased(seqname string, start0, end PosType, strand Strand) Interval {
	return Interval{Seqname: seqname, Start: start0 + 1, End: end, Strand: strand}
}

// ZeroBased returns the interval boundaries in the BED convention (0-based
// start, half-open end).
func (i Interval) ZeroBased() (start0, end PosType) {
	return i.Start - 1, i.End
}

// Width returns the number of positions covered by i.
func (i Interval) Width() PosType {
	return i.End - i.Start + 1
}

// ZeroWidth returns whether i covers no positions.
func (i Interval) ZeroWidth() bool {
	return i.End < i.Start
}

// validate checks the basic interval invariants: a nonempty sequence name,
// and Start <= End + 1 (zero-width allowed).
func (i Interval) validate() error {
	if i.Seqname == "" {
		return fmt.Errorf("%w: empty sequence name", ErrInvalidInterval)
	}
	if i.Start < 1 || i.End < i.Start-1 {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidInterval, i.Start, i.End)
	}
	if !i.Strand.Valid() {
		return fmt.Errorf("%w: bad strand %q", ErrInvalidInterval, i.Strand)
	}
	return nil
}

// Overlaps returns whether i and o share at least one position, ignoring
// strand.  Intervals on different sequences never overlap; zero-width
// intervals never overlap anything, including themselves.
func (i Interval) Overlaps(o Interval) bool {
	if i.Seqname != o.Seqname || i.ZeroWidth() || o.ZeroWidth() {
		return false
	}
	return i.Start <= o.End && o.Start <= i.End
}

// strandsCompatible returns whether two strands match under the directed
// overlap rule.  Unstranded intervals match any strand only when
// matchUnstranded is set.
func strandsCompatible(a, b Strand, matchUnstranded bool) bool {
	if a == b {
		return true
	}
	return matchUnstranded && (a == StrandNone || b == StrandNone)
}

// OverlapsDirected is Overlaps restricted to strand-compatible pairs.
func (i Interval) OverlapsDirected(o Interval, matchUnstranded bool) bool {
	return strandsCompatible(i.Strand, o.Strand, matchUnstranded) && i.Overlaps(o)
}

// Contains returns whether o lies fully within i, ignoring strand.
func (i Interval) Contains(o Interval) bool {
	if i.Seqname != o.Seqname || i.ZeroWidth() || o.ZeroWidth() {
		return false
	}
	return i.Start <= o.Start && o.End <= i.End
}

// Intersection returns the geometric intersection of i and o.  The second
// return value is false when the intervals do not overlap.
func (i Interval) Intersection(o Interval) (Interval, bool) {
	if !i.Overlaps(o) {
		return Interval{}, false
	}
	out := Interval{Seqname: i.Seqname, Start: i.Start, End: i.End, Strand: i.Strand}
	if o.Start > out.Start {
		out.Start = o.Start
	}
	if o.End < out.End {
		out.End = o.End
	}
	if i.Strand != o.Strand {
		out.Strand = StrandNone
	}
	return out, true
}

// DistanceTo returns the number of positions separating i and o on the same
// sequence (0 when they overlap or abut), and false when the intervals are on
// different sequences.
func (i Interval) DistanceTo(o Interval) (PosType, bool) {
	if i.Seqname != o.Seqname {
		return 0, false
	}
	if i.Start <= o.End && o.Start <= i.End {
		return 0, true
	}
	if i.End < o.Start {
		return o.Start - i.End - 1, true
	}
	return i.Start - o.End - 1, true
}

func (i Interval) String() string {
	return fmt.Sprintf("%s:[%d, %d]%c", i.Seqname, i.Start, i.End, i.Strand)
}
