package algebra

import (
	"sort"

	"github.com/rangelab/bio/ranges"
	"github.com/rangelab/bio/ranges/agg"
)

// DisjoinOpts configures Disjoin.
type DisjoinOpts struct {
	// Directed groups by strand in addition to sequence name.
	Directed bool
	// StrandPolicy applies in undirected mode only.
	StrandPolicy StrandPolicy
	// Reducers derive one output column per reducer, evaluated over the
	// input rows covering each output piece.
	Reducers []agg.Reducer
}

// Disjoin partitions each group's intervals at every distinct endpoint
// (starts and end+1), keeping exactly the pieces covered by at least one
// input row.  No two output intervals overlap, and their union equals the
// union of Reduce's output.  Zero-width input rows cover no positions and
// contribute no pieces.
func Disjoin(c *ranges.Collection, opts DisjoinOpts) (*ranges.Collection, error) {
	starts := c.Starts()
	ends := c.Ends()
	strands := c.Strands()
	seqnames := c.Seqnames()

	grouped := c.GroupBySeqname(opts.Directed)
	groups := append([]ranges.Group{}, grouped.Groups()...)
	sort.SliceStable(groups, func(a, b int) bool {
		ra, rb := groups[a].First, groups[b].First
		if seqnames[ra] != seqnames[rb] {
			return seqnames[ra] < seqnames[rb]
		}
		return strands[ra] < strands[rb]
	})

	var pieces []run
	for _, g := range groups {
		rows := make([]int, 0, len(g.Rows))
		for _, row := range g.Rows {
			if ends[row] >= starts[row] {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		sort.SliceStable(rows, func(a, b int) bool {
			if starts[rows[a]] != starts[rows[b]] {
				return starts[rows[a]] < starts[rows[b]]
			}
			return ends[rows[a]] < ends[rows[b]]
		})

		// Distinct boundaries: every start and every end+1.
		bounds := make([]ranges.PosType, 0, 2*len(rows))
		for _, row := range rows {
			bounds = append(bounds, starts[row], ends[row]+1)
		}
		sort.Slice(bounds, func(a, b int) bool { return bounds[a] < bounds[b] })
		bounds = dedupPos(bounds)

		// next points at the first row (in start order) not yet active.
		next := 0
		var active []int
		for b := 0; b+1 < len(bounds); b++ {
			pieceStart := bounds[b]
			pieceEnd := bounds[b+1] - 1
			for next < len(rows) && starts[rows[next]] <= pieceStart {
				active = append(active, rows[next])
				next++
			}
			covering := active[:0:0]
			live := active[:0]
			for _, row := range active {
				if ends[row] < pieceStart {
					continue
				}
				live = append(live, row)
				if starts[row] <= pieceStart && pieceEnd <= ends[row] {
					covering = append(covering, row)
				}
			}
			active = live
			if len(covering) == 0 {
				continue
			}
			sort.Ints(covering)
			strand, err := resolveStrand(c, covering, opts.StrandPolicy)
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, run{
				seqname: seqnames[rows[0]],
				start:   pieceStart,
				end:     pieceEnd,
				strand:  strand,
				rows:    covering,
			})
		}
	}
	return collectRuns(c, pieces, opts.Reducers)
}

// resolveStrand returns the common strand of the rows, or StrandNone /
// ErrMixedStrand per the policy when the rows disagree.
func resolveStrand(c *ranges.Collection, rows []int, policy StrandPolicy) (ranges.Strand, error) {
	strands := c.Strands()
	s := strands[rows[0]]
	for _, row := range rows[1:] {
		if strands[row] != s {
			if policy == StrandStrict {
				return 0, ranges.ErrMixedStrand
			}
			return ranges.StrandNone, nil
		}
	}
	return s, nil
}

func dedupPos(a []ranges.PosType) []ranges.PosType {
	out := a[:0]
	for i, v := range a {
		if i == 0 || v != a[i-1] {
			out = append(out, v)
		}
	}
	return out
}
