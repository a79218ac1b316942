package ranges

import "errors"

// Validation failures are raised synchronously at the call that introduced
// the bad state; there is no silent coercion.  Empty query results (no
// overlaps, zero coverage) are valid values, not errors.
var (
	// ErrInvalidInterval indicates malformed coordinates, an empty sequence
	// name, or an interval out of bounds with respect to a sequence
	// dictionary under strict validation.
	ErrInvalidInterval = errors.New("ranges: invalid interval")

	// ErrReservedColumn indicates an attempt to attach a metadata column
	// whose name collides with one of the reserved coordinate columns.
	ErrReservedColumn = errors.New("ranges: reserved column name")

	// ErrLengthMismatch indicates a metadata column whose length differs
	// from the collection's row count.
	ErrLengthMismatch = errors.New("ranges: column length mismatch")

	// ErrColumnMismatch indicates two collections whose column schemas
	// differ where they are required to agree (e.g. Append).
	ErrColumnMismatch = errors.New("ranges: column schema mismatch")

	// ErrUnknownSequence indicates an interval referencing a sequence name
	// absent from the sequence dictionary.
	ErrUnknownSequence = errors.New("ranges: unknown sequence")

	// ErrUnknownColumn indicates a reference to a metadata column that is
	// not present in the collection.
	ErrUnknownColumn = errors.New("ranges: unknown column")

	// ErrAmbiguousAnchor indicates a 5'/3' anchored coordinate mutation
	// requested on an unstranded interval.
	ErrAmbiguousAnchor = errors.New("ranges: ambiguous anchor on unstranded interval")

	// ErrBadGroupKey indicates a grouping column that is absent from the
	// collection or of a kind that cannot serve as a key.
	ErrBadGroupKey = errors.New("ranges: incompatible group key")

	// ErrMixedStrand indicates heterogeneous strands within one merge group
	// under the strict strand policy.
	ErrMixedStrand = errors.New("ranges: mixed strand in group")
)
