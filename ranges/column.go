package ranges

import (
	"fmt"
	"math"
)

// Kind identifies the element type of a metadata column.  Columns are a
// tagged union over a fixed set of scalar and per-row vector kinds; there is
// no dynamic dispatch over arbitrary types.
type Kind uint8

const (
	// KindInt holds one int64 per row.
	KindInt Kind = iota
	// KindFloat holds one float64 per row.
	KindFloat
	// KindString holds one string per row.
	KindString
	// KindIntList holds a variable-length []int64 per row.
	KindIntList
	// KindFloatList holds a variable-length []float64 per row.
	KindFloatList
	// KindStringList holds a variable-length []string per row.
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIntList:
		return "intlist"
	case KindFloatList:
		return "floatlist"
	case KindStringList:
		return "stringlist"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Missing-value markers, used by left joins for rows without a match.
var (
	// NAInt marks a missing integer value.
	NAInt = int64(math.MinInt64)
	// NAFloat marks a missing float value.
	NAFloat = math.NaN()
	// NAString marks a missing string value.
	NAString = "NA"
)

// IsNAFloat returns whether f is the missing-value marker.  (NaN does not
// compare equal to itself, so a plain == test cannot be used.)
func IsNAFloat(f float64) bool {
	return math.IsNaN(f)
}

// Column is one named, typed metadata column.  Exactly one of the payload
// slices is populated, selected by kind.  Accessors return the underlying
// slice; callers must treat it as read-only.
type Column struct {
	name string
	kind Kind

	ints       []int64
	floats     []float64
	strs       []string
	intLists   [][]int64
	floatLists [][]float64
	strLists   [][]string
}

// IntColumn returns an int64 column.
func IntColumn(name string, data []int64) Column {
	return Column{name: name, kind: KindInt, ints: data}
}

// FloatColumn returns a float64 column.
func FloatColumn(name string, data []float64) Column {
	return Column{name: name, kind: KindFloat, floats: data}
}

// StringColumn returns a string column.
func StringColumn(name string, data []string) Column {
	return Column{name: name, kind: KindString, strs: data}
}

// IntListColumn returns a column holding one []int64 per row.
func IntListColumn(name string, data [][]int64) Column {
	return Column{name: name, kind: KindIntList, intLists: data}
}

// FloatListColumn returns a column holding one []float64 per row.
func FloatListColumn(name string, data [][]float64) Column {
	return Column{name: name, kind: KindFloatList, floatLists: data}
}

// StringListColumn returns a column holding one []string per row.
func StringListColumn(name string, data [][]string) Column {
	return Column{name: name, kind: KindStringList, strLists: data}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Kind returns the column kind.
func (c Column) Kind() Kind { return c.kind }

// Renamed returns a column sharing c's data under a different name.
func (c Column) Renamed(name string) Column {
	c.name = name
	return c
}

// Len returns the number of rows in the column.
func (c Column) Len() int {
	switch c.kind {
	case KindInt:
		return len(c.ints)
	case KindFloat:
		return len(c.floats)
	case KindString:
		return len(c.strs)
	case KindIntList:
		return len(c.intLists)
	case KindFloatList:
		return len(c.floatLists)
	case KindStringList:
		return len(c.strLists)
	}
	return 0
}

// Ints returns the payload of a KindInt column.  It panics on other kinds.
func (c Column) Ints() []int64 {
	c.mustKind(KindInt)
	return c.ints
}

// Floats returns the payload of a KindFloat column.
func (c Column) Floats() []float64 {
	c.mustKind(KindFloat)
	return c.floats
}

// Strings returns the payload of a KindString column.
func (c Column) Strings() []string {
	c.mustKind(KindString)
	return c.strs
}

// IntLists returns the payload of a KindIntList column.
func (c Column) IntLists() [][]int64 {
	c.mustKind(KindIntList)
	return c.intLists
}

// FloatLists returns the payload of a KindFloatList column.
func (c Column) FloatLists() [][]float64 {
	c.mustKind(KindFloatList)
	return c.floatLists
}

// StringLists returns the payload of a KindStringList column.
func (c Column) StringLists() [][]string {
	c.mustKind(KindStringList)
	return c.strLists
}

func (c Column) mustKind(k Kind) {
	if c.kind != k {
		panic(fmt.Sprintf("ranges: column %q is %v, not %v", c.name, c.kind, k))
	}
}

// scalar returns whether the column kind can serve as a grouping key.
func (c Column) scalar() bool {
	return c.kind == KindInt || c.kind == KindFloat || c.kind == KindString
}

// Take returns a new column with row i of the result equal to row rows[i] of
// c.  A row index of -1 selects the missing-value marker; this is how left
// joins materialize unmatched rows.
func (c Column) Take(rows []int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindInt:
		out.ints = make([]int64, len(rows))
		for i, r := range rows {
			if r < 0 {
				out.ints[i] = NAInt
			} else {
				out.ints[i] = c.ints[r]
			}
		}
	case KindFloat:
		out.floats = make([]float64, len(rows))
		for i, r := range rows {
			if r < 0 {
				out.floats[i] = NAFloat
			} else {
				out.floats[i] = c.floats[r]
			}
		}
	case KindString:
		out.strs = make([]string, len(rows))
		for i, r := range rows {
			if r < 0 {
				out.strs[i] = NAString
			} else {
				out.strs[i] = c.strs[r]
			}
		}
	case KindIntList:
		out.intLists = make([][]int64, len(rows))
		for i, r := range rows {
			if r >= 0 {
				out.intLists[i] = c.intLists[r]
			}
		}
	case KindFloatList:
		out.floatLists = make([][]float64, len(rows))
		for i, r := range rows {
			if r >= 0 {
				out.floatLists[i] = c.floatLists[r]
			}
		}
	case KindStringList:
		out.strLists = make([][]string, len(rows))
		for i, r := range rows {
			if r >= 0 {
				out.strLists[i] = c.strLists[r]
			}
		}
	}
	return out
}

// slice returns rows [i, j) of c, sharing the underlying storage.
func (c Column) slice(i, j int) Column {
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindInt:
		out.ints = c.ints[i:j]
	case KindFloat:
		out.floats = c.floats[i:j]
	case KindString:
		out.strs = c.strs[i:j]
	case KindIntList:
		out.intLists = c.intLists[i:j]
	case KindFloatList:
		out.floatLists = c.floatLists[i:j]
	case KindStringList:
		out.strLists = c.strLists[i:j]
	}
	return out
}

// appendCol returns the concatenation of c and o.  The two columns must have
// the same name and kind.
func (c Column) appendCol(o Column) (Column, error) {
	if c.name != o.name || c.kind != o.kind {
		return Column{}, fmt.Errorf("%w: %q (%v) vs %q (%v)",
			ErrColumnMismatch, c.name, c.kind, o.name, o.kind)
	}
	out := Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindInt:
		out.ints = append(append([]int64{}, c.ints...), o.ints...)
	case KindFloat:
		out.floats = append(append([]float64{}, c.floats...), o.floats...)
	case KindString:
		out.strs = append(append([]string{}, c.strs...), o.strs...)
	case KindIntList:
		out.intLists = append(append([][]int64{}, c.intLists...), o.intLists...)
	case KindFloatList:
		out.floatLists = append(append([][]float64{}, c.floatLists...), o.floatLists...)
	case KindStringList:
		out.strLists = append(append([][]string{}, c.strLists...), o.strLists...)
	}
	return out, nil
}
