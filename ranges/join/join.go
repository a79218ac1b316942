/*Package join implements overlap joins between two interval collections:
  relational joins keyed by spatial overlap rather than equality.  The right
  collection is indexed once and queried once per left row, so a join costs
  O((n+m) log m + pairs).  All functions are stateless; empty results are
  valid values, never errors.
*/
package join

import (
	"github.com/pkg/errors"
	"github.com/rangelab/bio/ranges"
	"github.com/rangelab/bio/ranges/seqindex"
)

// Opts configures the overlap predicate and output column naming.
type Opts struct {
	// Directed requires matching strands.
	Directed bool
	// MatchUnstranded lets unstranded rows match any strand in directed
	// mode.
	MatchUnstranded bool
	// Within restricts matches to left rows fully contained in the right
	// row.
	Within bool
	// Suffixes rename colliding column names, left then right.  Defaults to
	// {".x", ".y"}.
	Suffixes [2]string
}

func (o Opts) suffixes() (string, string) {
	if o.Suffixes == ([2]string{}) {
		return ".x", ".y"
	}
	return o.Suffixes[0], o.Suffixes[1]
}

func (o Opts) query() seqindex.Query {
	return seqindex.Query{
		Directed:        o.Directed,
		MatchUnstranded: o.MatchUnstranded,
		Within:          o.Within,
	}
}

// Inner returns one row per overlapping (left, right) pair.  The output
// interval is the left interval; the row carries the left metadata plus the
// right metadata, with colliding column names suffixed.  Rows are ordered by
// left row, then by the right collection's original order.
func Inner(l, r *ranges.Collection, opts Opts) (*ranges.Collection, error) {
	lrows, rrows := pairRows(l, r, opts, false)
	return build(l, r, lrows, rrows, opts, false)
}

// Intersect is Inner with the output interval set to the geometric
// intersection of each matched pair.
func Intersect(l, r *ranges.Collection, opts Opts) (*ranges.Collection, error) {
	lrows, rrows := pairRows(l, r, opts, false)
	return build(l, r, lrows, rrows, opts, true)
}

// Left is Inner plus exactly one row for each left row without a match, with
// the right-derived columns set to the missing-value markers.
func Left(l, r *ranges.Collection, opts Opts) (*ranges.Collection, error) {
	lrows, rrows := pairRows(l, r, opts, true)
	return build(l, r, lrows, rrows, opts, false)
}

// pairRows computes the matched row pairs.  An unmatched left row appears
// once with right row -1 when keepUnmatched is set.
func pairRows(l, r *ranges.Collection, opts Opts, keepUnmatched bool) (lrows, rrows []int) {
	idx := seqindex.New(r)
	q := opts.query()
	for i := 0; i < l.Len(); i++ {
		hits := idx.Overlapping(l.Row(i), q)
		if len(hits) == 0 {
			if keepUnmatched {
				lrows = append(lrows, i)
				rrows = append(rrows, -1)
			}
			continue
		}
		for _, hit := range hits {
			lrows = append(lrows, i)
			rrows = append(rrows, hit)
		}
	}
	return lrows, rrows
}

func build(l, r *ranges.Collection, lrows, rrows []int, opts Opts, intersect bool) (*ranges.Collection, error) {
	seqnames := make([]string, len(lrows))
	starts := make([]ranges.PosType, len(lrows))
	ends := make([]ranges.PosType, len(lrows))
	strands := make([]ranges.Strand, len(lrows))
	for i, lrow := range lrows {
		seqnames[i] = l.Seqnames()[lrow]
		starts[i] = l.Starts()[lrow]
		ends[i] = l.Ends()[lrow]
		strands[i] = l.Strands()[lrow]
		if intersect {
			// pairRows only emits overlapping pairs here, so the
			// intersection is never empty.
			rrow := rrows[i]
			if r.Starts()[rrow] > starts[i] {
				starts[i] = r.Starts()[rrow]
			}
			if r.Ends()[rrow] < ends[i] {
				ends[i] = r.Ends()[rrow]
			}
		}
	}
	out, err := ranges.NewColumnar(seqnames, starts, ends, strands)
	if err != nil {
		return nil, errors.Wrap(err, "join: assembling output rows")
	}
	if d := l.Dict(); d != nil {
		if out, err = out.SetDict(d, ranges.ValidateStrict); err != nil {
			return nil, err
		}
	}

	lNames := make(map[string]bool, len(l.Columns()))
	for _, col := range l.Columns() {
		lNames[col.Name()] = true
	}
	rNames := make(map[string]bool, len(r.Columns()))
	for _, col := range r.Columns() {
		rNames[col.Name()] = true
	}
	lSuffix, rSuffix := opts.suffixes()
	for _, col := range l.Columns() {
		name := col.Name()
		if rNames[name] {
			name += lSuffix
		}
		if out, err = out.AddColumn(col.Take(lrows).Renamed(name)); err != nil {
			return nil, err
		}
	}
	for _, col := range r.Columns() {
		name := col.Name()
		if lNames[name] {
			name += rSuffix
		}
		if out, err = out.AddColumn(col.Take(rrows).Renamed(name)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
