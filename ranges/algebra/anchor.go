package algebra

import (
	"fmt"

	"github.com/rangelab/bio/ranges"
)

// Anchor names the fixed reference point of a coordinate mutation.  It is an
// explicit parameter of the mutating call; no anchor state is carried
// between calls.
type Anchor uint8

const (
	// AnchorStart keeps the start coordinate fixed.
	AnchorStart Anchor = iota
	// AnchorEnd keeps the end coordinate fixed.
	AnchorEnd
	// AnchorCenter keeps the midpoint fixed.
	AnchorCenter
	// AnchorFivePrime keeps the 5' end fixed; the strand decides which
	// physical end that is.
	AnchorFivePrime
	// AnchorThreePrime keeps the 3' end fixed.
	AnchorThreePrime
)

// Side names the flanking side.
type Side uint8

const (
	// SideLeft flanks below the start coordinate.
	SideLeft Side = iota
	// SideRight flanks above the end coordinate.
	SideRight
	// SideUpstream flanks the 5' side, resolved per-row by strand.
	SideUpstream
	// SideDownstream flanks the 3' side.
	SideDownstream
)

// Shift translates every interval by delta (negative shifts left),
// preserving metadata row alignment.  A shift below position 1 fails.
func Shift(c *ranges.Collection, delta ranges.PosType) (*ranges.Collection, error) {
	starts := make([]ranges.PosType, c.Len())
	ends := make([]ranges.PosType, c.Len())
	for i := 0; i < c.Len(); i++ {
		starts[i] = c.Starts()[i] + delta
		ends[i] = c.Ends()[i] + delta
	}
	return withCoords(c, starts, ends)
}

// Resize sets every interval's width to width, holding the anchored point
// fixed and recomputing the other coordinate.  A 5'/3' anchor on an
// unstranded row fails with ErrAmbiguousAnchor.
func Resize(c *ranges.Collection, width ranges.PosType, anchor Anchor) (*ranges.Collection, error) {
	if width < 0 {
		return nil, fmt.Errorf("%w: negative width %d", ranges.ErrInvalidInterval, width)
	}
	starts := make([]ranges.PosType, c.Len())
	ends := make([]ranges.PosType, c.Len())
	for i := 0; i < c.Len(); i++ {
		start := c.Starts()[i]
		end := c.Ends()[i]
		a, err := resolveAnchor(anchor, c.Strands()[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		switch a {
		case AnchorStart:
			ends[i] = start + width - 1
			starts[i] = start
		case AnchorEnd:
			starts[i] = end - width + 1
			ends[i] = end
		case AnchorCenter:
			starts[i] = start + floorDiv(end-start+1-width, 2)
			ends[i] = starts[i] + width - 1
		}
	}
	return withCoords(c, starts, ends)
}

// Flank returns width-sized intervals abutting the chosen side of every
// interval, preserving metadata row alignment.  Upstream/downstream resolve
// per row by strand and fail with ErrAmbiguousAnchor on unstranded rows.
func Flank(c *ranges.Collection, width ranges.PosType, side Side) (*ranges.Collection, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: flank width must be positive, got %d", ranges.ErrInvalidInterval, width)
	}
	starts := make([]ranges.PosType, c.Len())
	ends := make([]ranges.PosType, c.Len())
	for i := 0; i < c.Len(); i++ {
		s, err := resolveSide(side, c.Strands()[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if s == SideLeft {
			starts[i] = c.Starts()[i] - width
			ends[i] = c.Starts()[i] - 1
		} else {
			starts[i] = c.Ends()[i] + 1
			ends[i] = c.Ends()[i] + width
		}
	}
	return withCoords(c, starts, ends)
}

// resolveAnchor maps a stranded anchor to the physical anchor for one row.
func resolveAnchor(a Anchor, strand ranges.Strand) (Anchor, error) {
	switch a {
	case AnchorFivePrime:
		switch strand {
		case ranges.StrandPlus:
			return AnchorStart, nil
		case ranges.StrandMinus:
			return AnchorEnd, nil
		}
		return 0, ranges.ErrAmbiguousAnchor
	case AnchorThreePrime:
		switch strand {
		case ranges.StrandPlus:
			return AnchorEnd, nil
		case ranges.StrandMinus:
			return AnchorStart, nil
		}
		return 0, ranges.ErrAmbiguousAnchor
	}
	return a, nil
}

// resolveSide maps a stranded flank side to the physical side for one row.
func resolveSide(s Side, strand ranges.Strand) (Side, error) {
	switch s {
	case SideUpstream:
		switch strand {
		case ranges.StrandPlus:
			return SideLeft, nil
		case ranges.StrandMinus:
			return SideRight, nil
		}
		return 0, ranges.ErrAmbiguousAnchor
	case SideDownstream:
		switch strand {
		case ranges.StrandPlus:
			return SideRight, nil
		case ranges.StrandMinus:
			return SideLeft, nil
		}
		return 0, ranges.ErrAmbiguousAnchor
	}
	return s, nil
}

// withCoords rebuilds c with new coordinates, revalidating them (against the
// dictionary too, when one is attached) and carrying all metadata columns.
func withCoords(c *ranges.Collection, starts, ends []ranges.PosType) (*ranges.Collection, error) {
	out, err := ranges.NewColumnar(c.Seqnames(), starts, ends, c.Strands())
	if err != nil {
		return nil, err
	}
	if d := c.Dict(); d != nil {
		if out, err = out.SetDict(d, ranges.ValidateStrict); err != nil {
			return nil, err
		}
	}
	for _, col := range c.Columns() {
		if out, err = out.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// floorDiv divides rounding toward negative infinity, which Go's integer
// division does not.
func floorDiv(a, b ranges.PosType) ranges.PosType {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
