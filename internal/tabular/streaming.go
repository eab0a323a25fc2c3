package tabular

// streaming.go wraps CSV input so that encoding problems never reach the
// parser:
//
//   - skipBOM drops the UTF-8 byte order mark Windows tools prepend
//   - sanitizingReader replaces invalid UTF-8 bytes with '?'
//   - decodingReader transcodes Latin-1 / Windows-1252 exports to UTF-8
//
// All readers stream; memory use is bounded by the bufio buffer size.

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownEncoding is returned for an input encoding name that is not
// supported.
var ErrUnknownEncoding = errors.New("unknown encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodings maps accepted encoding names to character sets. A nil entry
// means the input is already UTF-8.
var encodings = map[string]encoding.Encoding{
	"":             nil,
	"utf-8":        nil,
	"utf8":         nil,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// ValidEncoding reports whether name is an accepted input encoding.
func ValidEncoding(name string) bool {
	_, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// decodingReader returns a reader producing valid UTF-8 from r.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if enc == nil {
		return newSanitizingReader(skipBOM(r)), nil
	}
	// Decoders are stateful; each stream gets a fresh one.
	return enc.NewDecoder().Reader(r), nil
}

// skipBOM returns a reader positioned after a leading UTF-8 BOM, if present.
func skipBOM(r io.Reader) *bufio.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

// sanitizingReader replaces each invalid UTF-8 byte with '?'. A one-byte
// replacement keeps output no longer than input.
type sanitizingReader struct {
	br      *bufio.Reader
	pending []byte
	scratch [utf8.UTFMax]byte
}

func newSanitizingReader(br *bufio.Reader) *sanitizingReader {
	return &sanitizingReader{br: br}
}

// Read implements io.Reader.
func (s *sanitizingReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) > 0 {
			c := copy(p[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		// Return what we have rather than block on the underlying reader.
		if n > 0 && s.br.Buffered() == 0 {
			break
		}

		r, size, err := s.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}

		if r == utf8.RuneError && size == 1 {
			s.scratch[0] = '?'
			s.pending = s.scratch[:1]
			continue
		}
		w := utf8.EncodeRune(s.scratch[:], r)
		s.pending = s.scratch[:w]
	}
	return n, nil
}
