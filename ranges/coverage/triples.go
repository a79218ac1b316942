package coverage

import (
	"github.com/pkg/errors"
	"github.com/rangelab/bio/ranges"
)

// Triple is one BedGraph-like record: a 0-based half-open region and its
// coverage score.
type Triple struct {
	Seqname string
	Start   ranges.PosType // 0-based
	End     ranges.PosType // exclusive
	Score   int64
}

// Triples exports a coverage partition as BedGraph-like records.  The input
// must carry the integer ScoreColumn.
func Triples(p *ranges.Collection) ([]Triple, error) {
	col, found := p.Column(ScoreColumn)
	if !found {
		return nil, errors.Wrapf(ranges.ErrUnknownColumn, "coverage: %s", ScoreColumn)
	}
	if col.Kind() != ranges.KindInt {
		return nil, errors.Errorf("coverage: column %s is %v, want int", ScoreColumn, col.Kind())
	}
	scores := col.Ints()
	out := make([]Triple, p.Len())
	for i := 0; i < p.Len(); i++ {
		start0, end := p.Row(i).ZeroBased()
		out[i] = Triple{
			Seqname: p.Seqnames()[i],
			Start:   start0,
			End:     end,
			Score:   scores[i],
		}
	}
	return out, nil
}
