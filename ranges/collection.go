package ranges

import (
	"fmt"
	"sort"
)

// Reserved names of the coordinate columns; metadata columns may not shadow
// them.
var reservedColumns = map[string]bool{
	"seqnames": true,
	"start":    true,
	"end":      true,
	"strand":   true,
}

// ValidationPolicy controls how interval coordinates are checked against a
// sequence dictionary.
type ValidationPolicy uint8

const (
	// ValidateStrict fails on intervals referencing unknown sequences or
	// exceeding the declared sequence bounds.
	ValidateStrict ValidationPolicy = iota
	// ValidateClip truncates out-of-bounds coordinates to [1, length]; an
	// unknown sequence still fails.
	ValidateClip
)

// Collection is an ordered sequence of intervals with row-aligned metadata
// columns, stored column-wise.  Operations in this and the dependent
// packages never mutate their inputs; derived collections may share column
// storage with their parents, so callers must not modify returned slices in
// place.
type Collection struct {
	seqnames []string
	starts   []PosType
	ends     []PosType
	strands  []Strand
	cols     []Column
	dict     *SeqDict
}

// New returns a collection over the given intervals, validating each one.
func New(intervals []Interval) (*Collection, error) {
	c := &Collection{
		seqnames: make([]string, len(intervals)),
		starts:   make([]PosType, len(intervals)),
		ends:     make([]PosType, len(intervals)),
		strands:  make([]Strand, len(intervals)),
	}
	for i, iv := range intervals {
		if err := iv.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		c.seqnames[i] = iv.Seqname
		c.starts[i] = iv.Start
		c.ends[i] = iv.End
		c.strands[i] = iv.Strand
	}
	return c, nil
}

// NewColumnar returns a collection over parallel coordinate slices.  A nil
// strands slice marks every row unstranded.
func NewColumnar(seqnames []string, starts, ends []PosType, strands []Strand) (*Collection, error) {
	n := len(seqnames)
	if len(starts) != n || len(ends) != n || (strands != nil && len(strands) != n) {
		return nil, fmt.Errorf("%w: seqnames=%d starts=%d ends=%d strands=%d",
			ErrLengthMismatch, n, len(starts), len(ends), len(strands))
	}
	if strands == nil {
		strands = make([]Strand, n)
		for i := range strands {
			strands[i] = StrandNone
		}
	}
	c := &Collection{seqnames: seqnames, starts: starts, ends: ends, strands: strands}
	for i := 0; i < n; i++ {
		if err := c.Row(i).validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return c, nil
}

// Len returns the number of rows.
func (c *Collection) Len() int { return len(c.starts) }

// Row returns the interval at row i.
func (c *Collection) Row(i int) Interval {
	return Interval{
		Seqname: c.seqnames[i],
		Start:   c.starts[i],
		End:     c.ends[i],
		Strand:  c.strands[i],
	}
}

// Seqnames returns the sequence name of every row.  Read-only.
func (c *Collection) Seqnames() []string { return c.seqnames }

// Starts returns the start coordinate of every row.  Read-only.
func (c *Collection) Starts() []PosType { return c.starts }

// Ends returns the end coordinate of every row.  Read-only.
func (c *Collection) Ends() []PosType { return c.ends }

// Strands returns the strand of every row.  Read-only.
func (c *Collection) Strands() []Strand { return c.strands }

// Dict returns the sequence dictionary attached to the collection, or nil.
func (c *Collection) Dict() *SeqDict { return c.dict }

// SetDict returns a collection with the given dictionary attached, after
// checking every row against it under the given policy.  With ValidateClip
// the returned collection holds the truncated coordinates; the receiver is
// never modified.
func (c *Collection) SetDict(d *SeqDict, policy ValidationPolicy) (*Collection, error) {
	out := c.shallowCopy()
	out.dict = d
	if d == nil {
		return out, nil
	}
	var clippedStarts, clippedEnds []PosType
	for i := 0; i < c.Len(); i++ {
		length, found := d.Lookup(c.seqnames[i])
		if !found {
			return nil, fmt.Errorf("%w: %s (row %d)", ErrUnknownSequence, c.seqnames[i], i)
		}
		if c.starts[i] <= length+1 && c.ends[i] <= length {
			continue
		}
		if policy == ValidateStrict {
			return nil, fmt.Errorf("%w: row %d %v exceeds length %d of %s",
				ErrInvalidInterval, i, c.Row(i), length, c.seqnames[i])
		}
		if clippedStarts == nil {
			clippedStarts = append([]PosType{}, c.starts...)
			clippedEnds = append([]PosType{}, c.ends...)
		}
		if clippedStarts[i] > length+1 {
			clippedStarts[i] = length + 1
		}
		if clippedEnds[i] > length {
			clippedEnds[i] = length
		}
		if clippedEnds[i] < clippedStarts[i]-1 {
			clippedEnds[i] = clippedStarts[i] - 1
		}
	}
	if clippedStarts != nil {
		out.starts = clippedStarts
		out.ends = clippedEnds
	}
	return out, nil
}

// AddColumn returns a collection with the given metadata column attached.
// An existing column of the same name is replaced.
func (c *Collection) AddColumn(col Column) (*Collection, error) {
	if reservedColumns[col.Name()] {
		return nil, fmt.Errorf("%w: %q", ErrReservedColumn, col.Name())
	}
	if col.Len() != c.Len() {
		return nil, fmt.Errorf("%w: column %q has %d rows, collection has %d",
			ErrLengthMismatch, col.Name(), col.Len(), c.Len())
	}
	out := c.shallowCopy()
	out.cols = make([]Column, 0, len(c.cols)+1)
	replaced := false
	for _, existing := range c.cols {
		if existing.Name() == col.Name() {
			out.cols = append(out.cols, col)
			replaced = true
		} else {
			out.cols = append(out.cols, existing)
		}
	}
	if !replaced {
		out.cols = append(out.cols, col)
	}
	return out, nil
}

// Column returns the named metadata column.
func (c *Collection) Column(name string) (Column, bool) {
	for _, col := range c.cols {
		if col.Name() == name {
			return col, true
		}
	}
	return Column{}, false
}

// Columns returns all metadata columns in attachment order.  Read-only.
func (c *Collection) Columns() []Column { return c.cols }

// Take returns a collection whose row i is row rows[i] of c.  Row indices
// may repeat; -1 is not allowed here (it is only meaningful for columns of
// an outer join).
func (c *Collection) Take(rows []int) *Collection {
	out := &Collection{
		seqnames: make([]string, len(rows)),
		starts:   make([]PosType, len(rows)),
		ends:     make([]PosType, len(rows)),
		strands:  make([]Strand, len(rows)),
		cols:     make([]Column, len(c.cols)),
		dict:     c.dict,
	}
	for i, r := range rows {
		out.seqnames[i] = c.seqnames[r]
		out.starts[i] = c.starts[r]
		out.ends[i] = c.ends[r]
		out.strands[i] = c.strands[r]
	}
	for j, col := range c.cols {
		out.cols[j] = col.Take(rows)
	}
	return out
}

// Slice returns rows [i, j), sharing storage with c.
func (c *Collection) Slice(i, j int) *Collection {
	out := &Collection{
		seqnames: c.seqnames[i:j],
		starts:   c.starts[i:j],
		ends:     c.ends[i:j],
		strands:  c.strands[i:j],
		cols:     make([]Column, len(c.cols)),
		dict:     c.dict,
	}
	for k, col := range c.cols {
		out.cols[k] = col.slice(i, j)
	}
	return out
}

// Append returns the row-wise concatenation of c and o.  The column schemas
// must agree; the dictionary of c is carried over.
func (c *Collection) Append(o *Collection) (*Collection, error) {
	if len(c.cols) != len(o.cols) {
		return nil, fmt.Errorf("%w: %d vs %d columns", ErrColumnMismatch, len(c.cols), len(o.cols))
	}
	out := &Collection{
		seqnames: append(append([]string{}, c.seqnames...), o.seqnames...),
		starts:   append(append([]PosType{}, c.starts...), o.starts...),
		ends:     append(append([]PosType{}, c.ends...), o.ends...),
		strands:  append(append([]Strand{}, c.strands...), o.strands...),
		cols:     make([]Column, len(c.cols)),
		dict:     c.dict,
	}
	for i := range c.cols {
		col, err := c.cols[i].appendCol(o.cols[i])
		if err != nil {
			return nil, err
		}
		out.cols[i] = col
	}
	return out, nil
}

// Sort returns a collection with rows ordered by (seqname, start, end),
// stably preserving input order among ties.
func (c *Collection) Sort() *Collection {
	rows := make([]int, c.Len())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if c.seqnames[ra] != c.seqnames[rb] {
			return c.seqnames[ra] < c.seqnames[rb]
		}
		if c.starts[ra] != c.starts[rb] {
			return c.starts[ra] < c.starts[rb]
		}
		return c.ends[ra] < c.ends[rb]
	})
	return c.Take(rows)
}

// Intervals materializes every row as an Interval value.
func (c *Collection) Intervals() []Interval {
	out := make([]Interval, c.Len())
	for i := range out {
		out[i] = c.Row(i)
	}
	return out
}

func (c *Collection) shallowCopy() *Collection {
	out := *c
	return &out
}
