/*Package algebra implements set-algebraic transformations over interval
  collections: reduce (merge overlapping or adjacent intervals), disjoin
  (partition at all endpoints), complement (gaps against a sequence
  dictionary), and coordinate mutations with an explicit anchor (shift,
  resize, flank).
*/
package algebra

import (
	"fmt"
	"sort"

	"github.com/rangelab/bio/ranges"
	"github.com/rangelab/bio/ranges/agg"
)

// StrandPolicy selects how undirected reduce/disjoin treat heterogeneous
// strands within one merged run.
type StrandPolicy uint8

const (
	// StrandDrop merges across strands; a run with mixed strands is emitted
	// unstranded.  This is the default.
	StrandDrop StrandPolicy = iota
	// StrandStrict fails with ErrMixedStrand when a run mixes strands.
	StrandStrict
)

// ReduceOpts configures Reduce.
type ReduceOpts struct {
	// Directed groups by strand in addition to sequence name.
	Directed bool
	// StrandPolicy applies in undirected mode only.
	StrandPolicy StrandPolicy
	// Reducers derive one output column per reducer, evaluated over each
	// merged run's input rows in ascending (start, end, input order).
	Reducers []agg.Reducer
}

// run is one merged region and the input rows it absorbed.
type run struct {
	seqname    string
	start, end ranges.PosType
	strand     ranges.Strand
	rows       []int
}

// Reduce merges intervals that overlap or are adjacent (end+1 == next
// start) within each group (sequence name, plus strand when directed),
// returning the minimal disjoint cover sorted by (seqname, strand, start).
// Reduce is idempotent.
func Reduce(c *ranges.Collection, opts ReduceOpts) (*ranges.Collection, error) {
	runs, err := mergeRuns(c, opts.Directed, opts.StrandPolicy)
	if err != nil {
		return nil, err
	}
	return collectRuns(c, runs, opts.Reducers)
}

// mergeRuns computes the merged runs of every group, sorted by
// (seqname, strand, start).
func mergeRuns(c *ranges.Collection, directed bool, policy StrandPolicy) ([]run, error) {
	starts := c.Starts()
	ends := c.Ends()
	strands := c.Strands()

	grouped := c.GroupBySeqname(directed)
	groups := append([]ranges.Group{}, grouped.Groups()...)
	seqnames := c.Seqnames()
	sort.SliceStable(groups, func(a, b int) bool {
		ra, rb := groups[a].First, groups[b].First
		if seqnames[ra] != seqnames[rb] {
			return seqnames[ra] < seqnames[rb]
		}
		return strands[ra] < strands[rb]
	})

	var runs []run
	for _, g := range groups {
		rows := append([]int{}, g.Rows...)
		sort.SliceStable(rows, func(a, b int) bool {
			if starts[rows[a]] != starts[rows[b]] {
				return starts[rows[a]] < starts[rows[b]]
			}
			return ends[rows[a]] < ends[rows[b]]
		})
		var cur *run
		for _, row := range rows {
			if cur != nil && starts[row] <= cur.end+1 {
				if ends[row] > cur.end {
					cur.end = ends[row]
				}
				if strands[row] != cur.strand {
					if !directed && policy == StrandStrict {
						return nil, fmt.Errorf("%w: %s [%d, %d]",
							ranges.ErrMixedStrand, cur.seqname, cur.start, cur.end)
					}
					cur.strand = ranges.StrandNone
				}
				cur.rows = append(cur.rows, row)
				continue
			}
			runs = append(runs, run{
				seqname: seqnames[row],
				start:   starts[row],
				end:     ends[row],
				strand:  strands[row],
				rows:    []int{row},
			})
			cur = &runs[len(runs)-1]
		}
	}
	return runs, nil
}

// collectRuns materializes runs as a collection, evaluating the reducers
// over each run's input rows.
func collectRuns(c *ranges.Collection, runs []run, reducers []agg.Reducer) (*ranges.Collection, error) {
	seqnames := make([]string, len(runs))
	starts := make([]ranges.PosType, len(runs))
	ends := make([]ranges.PosType, len(runs))
	strands := make([]ranges.Strand, len(runs))
	rowSets := make([][]int, len(runs))
	for i, r := range runs {
		seqnames[i] = r.seqname
		starts[i] = r.start
		ends[i] = r.end
		strands[i] = r.strand
		rowSets[i] = r.rows
	}
	out, err := ranges.NewColumnar(seqnames, starts, ends, strands)
	if err != nil {
		return nil, err
	}
	if d := c.Dict(); d != nil {
		if out, err = out.SetDict(d, ranges.ValidateStrict); err != nil {
			return nil, err
		}
	}
	if len(reducers) > 0 {
		cols, err := agg.Eval(c, rowSets, reducers...)
		if err != nil {
			return nil, err
		}
		for _, col := range cols {
			if out, err = out.AddColumn(col); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
