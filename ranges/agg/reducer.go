/*Package agg implements grouped summarization over interval collections.
  Reducers are shared with the set-algebra verbs: algebra.Reduce and
  algebra.Disjoin evaluate them over each merged run or disjoint piece.
  Numeric reducers accumulate in int64/float64 so genome-scale totals do
  not overflow.
*/
package agg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rangelab/bio/ranges"
	"gonum.org/v1/gonum/stat"
)

type reducerKind uint8

const (
	reduceCount reducerKind = iota
	reduceSum
	reduceMean
	reduceMedian
	reduceWidthSum
	reduceWeightedWidthSum
	reduceConcat
	reduceFirst
	reduceRevmap
)

// Reducer describes one per-group aggregate: a result column name, the
// aggregation to apply, and (for most reducers) the source column.
type Reducer struct {
	name string
	kind reducerKind
	col  string
	sep  string
}

// Count counts the rows of each group.
func Count(name string) Reducer {
	return Reducer{name: name, kind: reduceCount}
}

// Sum sums a numeric column; the result is Int for an Int source and Float
// for a Float source.
func Sum(name, col string) Reducer {
	return Reducer{name: name, kind: reduceSum, col: col}
}

// Mean averages a numeric column.
func Mean(name, col string) Reducer {
	return Reducer{name: name, kind: reduceMean, col: col}
}

// Median computes the empirical median of a numeric column.
func Median(name, col string) Reducer {
	return Reducer{name: name, kind: reduceMedian, col: col}
}

// WidthSum sums the interval widths of each group.  Zero-width rows
// contribute nothing.
func WidthSum(name string) Reducer {
	return Reducer{name: name, kind: reduceWidthSum}
}

// WeightedWidthSum sums width*value over a numeric column, e.g. total
// covered bases weighted by a coverage score.
func WeightedWidthSum(name, col string) Reducer {
	return Reducer{name: name, kind: reduceWeightedWidthSum, col: col}
}

// Concat joins a string column with the given separator.
func Concat(name, col, sep string) Reducer {
	return Reducer{name: name, kind: reduceConcat, col: col, sep: sep}
}

// First takes the value of a scalar column at each group's first row.
func First(name, col string) Reducer {
	return Reducer{name: name, kind: reduceFirst, col: col}
}

// Revmap records the input row indices of each group as an IntList column.
func Revmap(name string) Reducer {
	return Reducer{name: name, kind: reduceRevmap}
}

// Eval evaluates the reducers over the given row groups of c, returning one
// column per reducer with one row per group.  Rows within a group are
// visited in the order given.
func Eval(c *ranges.Collection, groups [][]int, rs ...Reducer) ([]ranges.Column, error) {
	out := make([]ranges.Column, len(rs))
	for i, r := range rs {
		col, err := r.eval(c, groups)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

func (r Reducer) sourceColumn(c *ranges.Collection) (ranges.Column, error) {
	col, found := c.Column(r.col)
	if !found {
		return ranges.Column{}, fmt.Errorf("%w: %q", ranges.ErrUnknownColumn, r.col)
	}
	return col, nil
}

// numericValues returns row values of an Int or Float column as float64.
func numericValues(col ranges.Column, rows []int) ([]float64, error) {
	vals := make([]float64, len(rows))
	switch col.Kind() {
	case ranges.KindInt:
		data := col.Ints()
		for i, row := range rows {
			vals[i] = float64(data[row])
		}
	case ranges.KindFloat:
		data := col.Floats()
		for i, row := range rows {
			vals[i] = data[row]
		}
	default:
		return nil, fmt.Errorf("%w: column %q (%v) is not numeric",
			ranges.ErrColumnMismatch, col.Name(), col.Kind())
	}
	return vals, nil
}

func (r Reducer) eval(c *ranges.Collection, groups [][]int) (ranges.Column, error) {
	switch r.kind {
	case reduceCount:
		data := make([]int64, len(groups))
		for g, rows := range groups {
			data[g] = int64(len(rows))
		}
		return ranges.IntColumn(r.name, data), nil

	case reduceWidthSum:
		starts, ends := c.Starts(), c.Ends()
		data := make([]int64, len(groups))
		for g, rows := range groups {
			var sum int64
			for _, row := range rows {
				if w := int64(ends[row]) - int64(starts[row]) + 1; w > 0 {
					sum += w
				}
			}
			data[g] = sum
		}
		return ranges.IntColumn(r.name, data), nil

	case reduceRevmap:
		data := make([][]int64, len(groups))
		for g, rows := range groups {
			data[g] = make([]int64, len(rows))
			for i, row := range rows {
				data[g][i] = int64(row)
			}
		}
		return ranges.IntListColumn(r.name, data), nil

	case reduceSum, reduceWeightedWidthSum:
		col, err := r.sourceColumn(c)
		if err != nil {
			return ranges.Column{}, err
		}
		starts, ends := c.Starts(), c.Ends()
		weighted := r.kind == reduceWeightedWidthSum
		switch col.Kind() {
		case ranges.KindInt:
			src := col.Ints()
			data := make([]int64, len(groups))
			for g, rows := range groups {
				var sum int64
				for _, row := range rows {
					v := src[row]
					if weighted {
						w := int64(ends[row]) - int64(starts[row]) + 1
						if w < 0 {
							w = 0
						}
						v *= w
					}
					sum += v
				}
				data[g] = sum
			}
			return ranges.IntColumn(r.name, data), nil
		case ranges.KindFloat:
			src := col.Floats()
			data := make([]float64, len(groups))
			for g, rows := range groups {
				var sum float64
				for _, row := range rows {
					v := src[row]
					if weighted {
						w := float64(ends[row]) - float64(starts[row]) + 1
						if w < 0 {
							w = 0
						}
						v *= w
					}
					sum += v
				}
				data[g] = sum
			}
			return ranges.FloatColumn(r.name, data), nil
		default:
			return ranges.Column{}, fmt.Errorf("%w: column %q (%v) is not numeric",
				ranges.ErrColumnMismatch, col.Name(), col.Kind())
		}

	case reduceMean, reduceMedian:
		col, err := r.sourceColumn(c)
		if err != nil {
			return ranges.Column{}, err
		}
		data := make([]float64, len(groups))
		for g, rows := range groups {
			vals, err := numericValues(col, rows)
			if err != nil {
				return ranges.Column{}, err
			}
			if len(vals) == 0 {
				data[g] = ranges.NAFloat
				continue
			}
			if r.kind == reduceMean {
				data[g] = stat.Mean(vals, nil)
			} else {
				sort.Float64s(vals)
				data[g] = stat.Quantile(0.5, stat.Empirical, vals, nil)
			}
		}
		return ranges.FloatColumn(r.name, data), nil

	case reduceConcat:
		col, err := r.sourceColumn(c)
		if err != nil {
			return ranges.Column{}, err
		}
		data := make([]string, len(groups))
		for g, rows := range groups {
			var b strings.Builder
			for i, row := range rows {
				if i > 0 {
					b.WriteString(r.sep)
				}
				switch col.Kind() {
				case ranges.KindString:
					b.WriteString(col.Strings()[row])
				case ranges.KindInt:
					b.WriteString(strconv.FormatInt(col.Ints()[row], 10))
				case ranges.KindFloat:
					b.WriteString(strconv.FormatFloat(col.Floats()[row], 'g', -1, 64))
				default:
					return ranges.Column{}, fmt.Errorf("%w: column %q (%v) is not scalar",
						ranges.ErrColumnMismatch, col.Name(), col.Kind())
				}
			}
			data[g] = b.String()
		}
		return ranges.StringColumn(r.name, data), nil

	case reduceFirst:
		col, err := r.sourceColumn(c)
		if err != nil {
			return ranges.Column{}, err
		}
		firsts := make([]int, len(groups))
		for g, rows := range groups {
			if len(rows) == 0 {
				firsts[g] = -1
			} else {
				firsts[g] = rows[0]
			}
		}
		return col.Take(firsts).Renamed(r.name), nil
	}
	return ranges.Column{}, fmt.Errorf("agg: unknown reducer kind %d", r.kind)
}
