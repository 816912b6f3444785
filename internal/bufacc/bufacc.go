// Package bufacc provides position lookups over an in-memory text buffer. It
// answers the two questions the tokenization scan asks over and over: which
// line a byte offset falls on, and how far into that line the offset is.
package bufacc

import "sort"

// Accessor is a byte-offset to line/column index over a single immutable
// buffer. Line numbers are 0-based. Columns are 0-based raw byte offsets
// within the line; a multi-byte character occupies as many columns as it has
// bytes. Downstream consumers rely on the byte-based metric, so it is kept
// even though it is not rune-aware.
//
// A newline byte belongs to the line it terminates, and the line after the
// final newline exists even when it is empty.
type Accessor struct {
	buf        []byte
	lineStarts []int
}

// New builds an Accessor for the given buffer. The buffer is indexed once, up
// front; lookups afterward do not rescan it. The Accessor holds a reference
// to the buffer, which must not be modified while the Accessor is in use.
func New(buf []byte) *Accessor {
	starts := []int{0}
	for i := range buf {
		if buf[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &Accessor{buf: buf, lineStarts: starts}
}

// Len returns the length of the underlying buffer in bytes.
func (acc *Accessor) Len() int {
	return len(acc.buf)
}

// Lines returns the number of lines in the buffer. An empty buffer has one
// (empty) line.
func (acc *Accessor) Lines() int {
	return len(acc.lineStarts)
}

// LineAt returns the 0-based line number that the byte at offset pos falls
// on. A pos at or past the end of the buffer reports the final line.
func (acc *Accessor) LineAt(pos int) int {
	if pos < 0 {
		return 0
	}

	// find the first line start strictly after pos; pos is on the line before
	// it.
	n := sort.Search(len(acc.lineStarts), func(i int) bool {
		return acc.lineStarts[i] > pos
	})
	return n - 1
}

// ColumnAt returns the 0-based byte column of the byte at offset pos within
// its line.
func (acc *Accessor) ColumnAt(pos int) int {
	if pos < 0 {
		return 0
	}
	return pos - acc.lineStarts[acc.LineAt(pos)]
}
