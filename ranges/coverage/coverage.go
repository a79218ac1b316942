/*Package coverage computes per-position overlap counts over an interval
  collection, represented as a disjoint run-length partition: contiguous
  output intervals annotated with an integer score, gaps included at score
  0.  Sweeps over distinct sequences run in parallel.
*/
package coverage

import (
	"sort"

	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"
	"github.com/rangelab/bio/ranges"
)

// ScoreColumn is the name of the coverage score column in a partition.
const ScoreColumn = "score"

// Opts configures Compute.
type Opts struct {
	// Dict bounds every sequence's partition to [1, length] and adds a
	// zero-score run for dictionary sequences without input intervals.
	// Input rows on unknown sequences or extending past the declared
	// length are rejected.  When nil, the dictionary attached to the input
	// collection is used.
	Dict *ranges.SeqDict
	// ObservedExtent bounds each sequence's partition to the minimum start
	// and maximum end observed in the input.  It must be set explicitly
	// when no dictionary is available; the extent is never silently
	// inferred.
	ObservedExtent bool
}

// event is one sweep delta: +1 at an interval start, -1 at end+1.
type event struct {
	pos   ranges.PosType
	delta int64
}

// seqRuns is one sequence's computed partition.
type seqRuns struct {
	starts, ends []ranges.PosType
	scores       []int64
}

// Compute returns the coverage partition of c: for every position of the
// chosen extent, the number of input intervals containing it, run-length
// encoded as a disjoint contiguous collection with an integer ScoreColumn.
// Zero-width input rows contribute nothing.
func Compute(c *ranges.Collection, opts Opts) (*ranges.Collection, error) {
	dict := opts.Dict
	if dict == nil {
		dict = c.Dict()
	}
	if dict == nil && !opts.ObservedExtent {
		return nil, errors.New("coverage: a sequence dictionary or ObservedExtent is required")
	}

	seqnames := c.Seqnames()
	starts := c.Starts()
	ends := c.Ends()
	eventsBySeq := make(map[string][]event)
	for row := range seqnames {
		if dict != nil {
			length, found := dict.Lookup(seqnames[row])
			if !found {
				return nil, errors.Wrapf(ranges.ErrUnknownSequence, "coverage: %s", seqnames[row])
			}
			if ends[row] > length {
				return nil, errors.Wrapf(ranges.ErrInvalidInterval,
					"coverage: %s [%d, %d] exceeds sequence length %d",
					seqnames[row], starts[row], ends[row], length)
			}
		}
		if ends[row] < starts[row] {
			continue
		}
		eventsBySeq[seqnames[row]] = append(eventsBySeq[seqnames[row]],
			event{pos: starts[row], delta: 1},
			event{pos: ends[row] + 1, delta: -1})
	}

	var order []string
	if dict != nil {
		for _, name := range dict.Names() {
			order = append(order, name)
		}
	} else {
		for name := range eventsBySeq {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	results := make([]seqRuns, len(order))
	err := traverse.Each(len(order), func(i int) error {
		name := order[i]
		events := eventsBySeq[name]
		var extentStart, extentEnd ranges.PosType
		if dict != nil {
			length, _ := dict.Lookup(name)
			if length == 0 {
				return nil
			}
			extentStart, extentEnd = 1, length
		} else {
			extentStart, extentEnd = observedExtent(events)
			if extentEnd < extentStart {
				return nil
			}
		}
		results[i] = sweep(events, extentStart, extentEnd)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var outSeqnames []string
	var outStarts, outEnds []ranges.PosType
	var outScores []int64
	for i, rs := range results {
		for j := range rs.starts {
			outSeqnames = append(outSeqnames, order[i])
			outStarts = append(outStarts, rs.starts[j])
			outEnds = append(outEnds, rs.ends[j])
			outScores = append(outScores, rs.scores[j])
		}
	}
	out, err := ranges.NewColumnar(outSeqnames, outStarts, outEnds, nil)
	if err != nil {
		return nil, err
	}
	if dict != nil {
		if out, err = out.SetDict(dict, ranges.ValidateStrict); err != nil {
			return nil, err
		}
	}
	return out.AddColumn(ranges.IntColumn(ScoreColumn, outScores))
}

// observedExtent returns the minimum start and maximum end among the events.
func observedExtent(events []event) (ranges.PosType, ranges.PosType) {
	if len(events) == 0 {
		return 1, 0
	}
	lo, hi := ranges.PosType(ranges.PosTypeMax), ranges.PosType(1)
	for _, e := range events {
		if e.delta > 0 && e.pos < lo {
			lo = e.pos
		}
		if e.delta < 0 && e.pos-1 > hi {
			hi = e.pos - 1
		}
	}
	return lo, hi
}

// sweep walks one sequence's events in position order, accumulating the
// running count and emitting a run whenever it changes.  All deltas at one
// position are applied together.
func sweep(events []event, extentStart, extentEnd ranges.PosType) seqRuns {
	sort.SliceStable(events, func(a, b int) bool { return events[a].pos < events[b].pos })
	var out seqRuns
	emit := func(start, end ranges.PosType, score int64) {
		if end < start {
			return
		}
		n := len(out.starts)
		if n > 0 && out.scores[n-1] == score && out.ends[n-1]+1 == start {
			out.ends[n-1] = end
			return
		}
		out.starts = append(out.starts, start)
		out.ends = append(out.ends, end)
		out.scores = append(out.scores, score)
	}
	cursor := extentStart
	var score int64
	for i := 0; i < len(events); {
		pos := events[i].pos
		if pos > extentEnd+1 {
			break
		}
		if pos > cursor {
			emit(cursor, min(pos-1, extentEnd), score)
			cursor = pos
		}
		for ; i < len(events) && events[i].pos == pos; i++ {
			score += events[i].delta
		}
	}
	if cursor <= extentEnd {
		emit(cursor, extentEnd, score)
	}
	return out
}

func min(a, b ranges.PosType) ranges.PosType {
	if a < b {
		return a
	}
	return b
}
