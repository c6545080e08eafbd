package ingest

// reader.go normalizes raw upload bytes before CSV parsing. Spreadsheet
// exports from Windows tools often lead with a UTF-8 byte order mark and
// can carry stray bytes from legacy encodings; both confuse encoding/csv
// in ways the uploader cannot see in their file. The wrappers here fix
// that while streaming, without buffering the whole upload.

import (
	"io"
	"unicode/utf8"
)

// NewTextReader wraps r so the CSV parser sees clean UTF-8: a leading
// byte order mark is dropped and invalid byte sequences are replaced
// with '?'.
func NewTextReader(r io.Reader) io.Reader {
	return newUTF8Reader(newBOMReader(r))
}

// bomReader skips the UTF-8 byte order mark (0xEF 0xBB 0xBF) if the
// stream starts with one.
type bomReader struct {
	r       io.Reader
	checked bool
	held    []byte
}

func newBOMReader(r io.Reader) *bomReader {
	return &bomReader{r: r}
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		var head [3]byte
		n, err := io.ReadFull(b.r, head[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		if !(n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF) {
			b.held = append(b.held, head[:n]...)
		}
	}
	if len(b.held) > 0 {
		n := copy(p, b.held)
		b.held = b.held[n:]
		return n, nil
	}
	return b.r.Read(p)
}

// utf8Reader replaces invalid UTF-8 bytes with '?' as data streams
// through. A multi-byte sequence split across two reads is held back
// until the next call so it is not falsely flagged as invalid.
type utf8Reader struct {
	r       io.Reader
	pending []byte
}

func newUTF8Reader(r io.Reader) *utf8Reader {
	return &utf8Reader{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (u *utf8Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	off := copy(p, u.pending)
	u.pending = u.pending[:0]

	n, err := u.r.Read(p[off:])
	n += off
	if n == 0 {
		return 0, err
	}
	if allASCII(p[:n]) {
		return n, err
	}
	return u.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place, substituting '?' for invalid bytes,
// and returns the number of usable bytes. The substitute is a single
// byte so the buffer never grows. When not at EOF, a trailing partial
// sequence moves to pending instead of being rewritten.
func (u *utf8Reader) sanitize(data []byte, atEOF bool) int {
	if utf8.Valid(data) {
		if !atEOF {
			if t := trailingPartial(data); t > 0 {
				u.pending = append(u.pending, data[len(data)-t:]...)
				return len(data) - t
			}
		}
		return len(data)
	}

	w := 0
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if !atEOF && i+size >= len(data) && partialRune(data[i:]) {
			u.pending = append(u.pending, data[i:]...)
			return w
		}
		if r == utf8.RuneError && size == 1 {
			data[w] = '?'
			w++
			i++
			continue
		}
		copy(data[w:], data[i:i+size])
		w += size
		i += size
	}
	return w
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// trailingPartial reports how many bytes at the end of data begin a
// multi-byte sequence that has not finished arriving.
func trailingPartial(data []byte) int {
	for i := 1; i <= 3 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xC0 {
			if runeWidth(b) > i {
				return i
			}
			return 0
		}
		if b&0xC0 != 0x80 {
			return 0
		}
	}
	return 0
}

// partialRune reports whether data is the truncated start of one
// multi-byte sequence.
func partialRune(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return runeWidth(data[0]) > len(data)
}

// runeWidth returns the encoded length implied by a UTF-8 lead byte, or
// zero for a continuation byte.
func runeWidth(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}
