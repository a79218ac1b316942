package ranges

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

// SeqDict is a sequence length table: an ordered mapping from sequence name
// to its length.  It is supplied once at collection-construction time,
// immutable thereafter, and shared read-only by all derived collections.
type SeqDict struct {
	names   []string
	lengths []PosType
	byName  map[string]int
}

// NewSeqDict returns a dictionary over the given names and lengths.
func NewSeqDict(names []string, lengths []PosType) (*SeqDict, error) {
	if len(names) != len(lengths) {
		return nil, fmt.Errorf("%w: %d names, %d lengths", ErrLengthMismatch, len(names), len(lengths))
	}
	d := &SeqDict{
		names:   append([]string{}, names...),
		lengths: append([]PosType{}, lengths...),
		byName:  make(map[string]int, len(names)),
	}
	for i, name := range d.names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty sequence name at index %d", ErrInvalidInterval, i)
		}
		if d.lengths[i] < 0 {
			return nil, fmt.Errorf("%w: sequence %s has negative length", ErrInvalidInterval, name)
		}
		if _, found := d.byName[name]; found {
			return nil, fmt.Errorf("%w: duplicate sequence %s", ErrInvalidInterval, name)
		}
		d.byName[name] = i
	}
	return d, nil
}

// SeqDictFromSAMHeader builds a dictionary from the reference sequences of a
// SAM/BAM header.
func SeqDictFromSAMHeader(h *sam.Header) (*SeqDict, error) {
	refs := h.Refs()
	names := make([]string, len(refs))
	lengths := make([]PosType, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name()
		if ref.Len() > PosTypeMax {
			return nil, fmt.Errorf("%w: sequence %s length %d exceeds coordinate range",
				ErrInvalidInterval, ref.Name(), ref.Len())
		}
		lengths[i] = PosType(ref.Len())
	}
	return NewSeqDict(names, lengths)
}

// Len returns the number of sequences in the dictionary.
func (d *SeqDict) Len() int { return len(d.names) }

// Names returns the sequence names in dictionary order.  The returned slice
// must be treated as read-only.
func (d *SeqDict) Names() []string { return d.names }

// Lookup returns the length of the named sequence.
func (d *SeqDict) Lookup(name string) (PosType, bool) {
	i, found := d.byName[name]
	if !found {
		return 0, false
	}
	return d.lengths[i], true
}
