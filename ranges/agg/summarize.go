package agg

import (
	"github.com/rangelab/bio/ranges"
)

// Table is a plain columnar result of a grouped summarization.  It is not an
// interval collection: grouping consumes the positional columns, so the key
// columns plus one column per reducer are all that remain.
type Table struct {
	cols []ranges.Column
}

// Columns returns the table columns: the group keys followed by the reducer
// results.  Read-only.
func (t *Table) Columns() []ranges.Column { return t.cols }

// Column returns the named table column.
func (t *Table) Column(name string) (ranges.Column, bool) {
	for _, col := range t.cols {
		if col.Name() == name {
			return col, true
		}
	}
	return ranges.Column{}, false
}

// Len returns the number of rows (groups).
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// Summarize evaluates the reducers per group of g and returns one table row
// per group, keyed by the grouping columns.
func Summarize(g *ranges.Grouped, rs ...Reducer) (*Table, error) {
	c := g.Collection()
	groups := g.Groups()
	firsts := make([]int, len(groups))
	rowSets := make([][]int, len(groups))
	for i, grp := range groups {
		firsts[i] = grp.First
		rowSets[i] = grp.Rows
	}

	t := &Table{}
	for _, key := range g.Keys() {
		switch key {
		case "seqnames":
			seqnames := c.Seqnames()
			data := make([]string, len(firsts))
			for i, row := range firsts {
				data[i] = seqnames[row]
			}
			t.cols = append(t.cols, ranges.StringColumn("seqnames", data))
		case "strand":
			strands := c.Strands()
			data := make([]string, len(firsts))
			for i, row := range firsts {
				data[i] = string(strands[row])
			}
			t.cols = append(t.cols, ranges.StringColumn("strand", data))
		default:
			// GroupBy has already checked that the key column exists and is
			// scalar.
			col, _ := c.Column(key)
			t.cols = append(t.cols, col.Take(firsts))
		}
	}

	resultCols, err := Eval(c, rowSets, rs...)
	if err != nil {
		return nil, err
	}
	t.cols = append(t.cols, resultCols...)
	return t, nil
}
