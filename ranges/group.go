package ranges

import (
	"fmt"
	"strconv"
	"strings"
)

// Group is one partition of a grouped collection: the rows carrying one
// distinct key value, in their original order.  First is the first such row;
// key column values can be read from it.
type Group struct {
	First int
	Rows  []int
}

// Grouped is an explicit group-by wrapper: a collection partitioned by an
// ordered set of key columns.  The pseudo-columns "seqnames" and "strand"
// may be used alongside metadata column names.  Verbs that are group-aware
// (reduce, disjoin, summarize) consume a Grouped; there is no implicit
// grouping state.
type Grouped struct {
	coll   *Collection
	keys   []string
	groups []Group
}

// GroupBy partitions c by the given key columns, with groups ordered by
// first appearance.  List-kind columns cannot serve as keys.
func (c *Collection) GroupBy(keys ...string) (*Grouped, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no key columns given", ErrBadGroupKey)
	}
	type keyCol struct {
		pseudo string // "seqnames" or "strand", or empty
		col    Column
	}
	keyCols := make([]keyCol, len(keys))
	for i, name := range keys {
		switch name {
		case "seqnames", "strand":
			keyCols[i] = keyCol{pseudo: name}
		case "start", "end":
			return nil, fmt.Errorf("%w: cannot group by coordinate column %q", ErrBadGroupKey, name)
		default:
			col, found := c.Column(name)
			if !found {
				return nil, fmt.Errorf("%w: %q", ErrBadGroupKey, name)
			}
			if !col.scalar() {
				return nil, fmt.Errorf("%w: %q is a list column", ErrBadGroupKey, name)
			}
			keyCols[i] = keyCol{col: col}
		}
	}

	g := &Grouped{coll: c, keys: append([]string{}, keys...)}
	index := make(map[string]int)
	var b strings.Builder
	for row := 0; row < c.Len(); row++ {
		b.Reset()
		for _, kc := range keyCols {
			switch kc.pseudo {
			case "seqnames":
				b.WriteString(c.seqnames[row])
			case "strand":
				b.WriteByte(byte(c.strands[row]))
			default:
				switch kc.col.Kind() {
				case KindInt:
					b.WriteString(strconv.FormatInt(kc.col.Ints()[row], 10))
				case KindFloat:
					b.WriteString(strconv.FormatFloat(kc.col.Floats()[row], 'g', -1, 64))
				case KindString:
					b.WriteString(kc.col.Strings()[row])
				}
			}
			b.WriteByte(0)
		}
		key := b.String()
		gi, found := index[key]
		if !found {
			gi = len(g.groups)
			index[key] = gi
			g.groups = append(g.groups, Group{First: row})
		}
		g.groups[gi].Rows = append(g.groups[gi].Rows, row)
	}
	return g, nil
}

// GroupBySeqname partitions c by sequence name, the default grouping of the
// set-algebra verbs.  When directed is set, strand is part of the key.
func (c *Collection) GroupBySeqname(directed bool) *Grouped {
	var g *Grouped
	var err error
	if directed {
		g, err = c.GroupBy("seqnames", "strand")
	} else {
		g, err = c.GroupBy("seqnames")
	}
	if err != nil {
		// The pseudo-columns always exist.
		panic(err)
	}
	return g
}

// Collection returns the underlying collection.
func (g *Grouped) Collection() *Collection { return g.coll }

// Keys returns the ordered key column names.
func (g *Grouped) Keys() []string { return g.keys }

// Groups returns the partitions in order of first appearance.  Read-only.
func (g *Grouped) Groups() []Group { return g.groups }
