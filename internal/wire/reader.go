// Package wire provides a bounds-checked cursor over an immutable byte buffer
// for decoding length-prefixed Binary HTTP structures.
package wire

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-bhttp/internal/varint"
)

// ErrTruncated is returned when the input ends before a structure is complete.
var ErrTruncated = errors.New("truncated input")

// TruncatedError reports a read that could not be satisfied.
type TruncatedError struct {
	Offset int    // absolute offset of the failed read
	Need   uint64 // bytes required
	Have   int    // bytes available
}

// Error implements the error interface.
func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// Unwrap returns ErrTruncated.
func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// Reader reads from a byte slice without copying it.
// A Reader is not safe for concurrent use.
type Reader struct {
	buf  []byte
	pos  int
	base int // offset of buf[0] in the outermost buffer
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// HasRemaining reports whether unread bytes remain.
func (r *Reader) HasRemaining() bool { return r.pos < len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Offset returns the read position relative to the outermost buffer.
func (r *Reader) Offset() int { return r.base + r.pos }

func (r *Reader) truncated(need uint64) error {
	return &TruncatedError{Offset: r.Offset(), Need: need, Have: r.Remaining()}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	if !r.HasRemaining() {
		return 0, r.truncated(1)
	}
	c := r.buf[r.pos]
	r.pos++
	return c, nil
}

// ReadVarint reads an RFC 9000 variable-length integer.
func (r *Reader) ReadVarint() (uint64, error) {
	v, n, err := varint.Parse(r.buf[r.pos:])
	if err != nil {
		need := uint64(1)
		if r.HasRemaining() {
			need = uint64(varint.PrefixLen(r.buf[r.pos]))
		}
		return 0, r.truncated(need)
	}
	r.pos += n
	return v, nil
}

// ReadExactly returns the next n bytes. The result aliases the underlying buffer.
func (r *Reader) ReadExactly(n uint64) ([]byte, error) {
	if n > uint64(r.Remaining()) {
		return nil, r.truncated(n)
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// ReadKnownLengthBlock reads a varint length L followed by L bytes and returns
// a Reader scoped to those bytes. The receiver advances past the block.
func (r *Reader) ReadKnownLengthBlock() (*Reader, error) {
	n, err := r.ReadVarint()
	if err != nil {
		return nil, err
	}
	start := r.Offset()
	b, err := r.ReadExactly(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, base: start}, nil
}

// Rest returns all unread bytes and moves the cursor to the end.
func (r *Reader) Rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}
