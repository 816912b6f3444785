// Package enc converts caller-supplied text buffers to UTF-8 based on an
// encoding hint, so that everything downstream of the conversion only ever
// sees UTF-8 bytes.
package enc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknownEncoding is returned when a hint does not name any charset this
// package can decode from.
var ErrUnknownEncoding = errors.New("unknown encoding")

// IsUTF8Hint returns whether the given hint names UTF-8 itself, meaning
// Decode would return the input unchanged. The empty hint counts as UTF-8.
func IsUTF8Hint(hint string) bool {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// Decode converts data from the charset named by hint into UTF-8. Charset
// names are resolved the way HTML does it (IANA names and common aliases,
// case-insensitive), so both "latin1" and "ISO-8859-1" work. If the hint is
// UTF-8 or empty, data is returned as-is without validation; malformed
// sequences surface later, when run text is decoded.
//
// A hint naming no known charset returns an error matching
// ErrUnknownEncoding. A decode failure of the data itself is also an error;
// no partially converted buffer is ever returned.
func Decode(data []byte, hint string) ([]byte, error) {
	if IsUTF8Hint(hint) {
		return data, nil
	}

	e, err := htmlindex.Get(strings.TrimSpace(hint))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", hint, ErrUnknownEncoding)
	}

	decoded, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding buffer as %q: %w", hint, err)
	}

	return decoded, nil
}
