// Package wire implements the primitive little-endian decoders and encoders
// that every SOR block codec is built on: fixed-width integers,
// NUL-terminated strings and fixed-length raw byte runs.
//
// Reading is bounds-safe by construction: a Reader is always built over an
// exact, already-sliced region of the file (the size the map block recorded
// for a given block), so a short read simply runs out of bytes rather than
// wandering into a neighbouring block.
package wire

import (
	"bytes"
	"fmt"

	"github.com/anaminus/parse"
)

// Reader decodes the primitive encodings used throughout a SOR file from a
// bounded byte slice. It accumulates the first error encountered across a
// sequence of reads, mirroring the combinator style of a parser built over an
// immutable cursor: callers perform their whole sequence of field reads and
// check Err once at the end.
type Reader struct {
	br  *parse.BinaryReader
	buf []byte
}

// NewReader returns a Reader over buf. buf is not retained or mutated.
func NewReader(buf []byte) *Reader {
	return &Reader{br: parse.NewBinaryReader(bytes.NewReader(buf)), buf: buf}
}

// Err returns the first error encountered so far, or nil.
func (r *Reader) Err() error {
	return r.br.Err()
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.br.N()
}

// Len returns the number of bytes left unconsumed in the bounded region.
// Callers size allocations for a count field read from untrusted bytes
// against this rather than the count itself, since the count is not yet
// known to be satisfiable by the input.
func (r *Reader) Len() int {
	n := len(r.buf) - int(r.br.N())
	if n < 0 {
		return 0
	}
	return n
}

// Number reads a little-endian fixed-width integer into v, which must be a
// pointer to one of the sized integer types (int16, uint16, int32, uint32,
// etc). Returns false (and records the error) on a short read.
func (r *Reader) Number(v interface{}) bool {
	return !r.br.Number(v)
}

// Bytes reads exactly len(dst) bytes into dst. Returns false on a short read.
func (r *Reader) Bytes(dst []byte) bool {
	return !r.br.Bytes(dst)
}

// CString reads a NUL-terminated byte run and returns the bytes before the
// terminator, consuming the terminator. The returned bytes are not assumed to
// be valid UTF-8 — any non-NUL byte is retained verbatim.
func (r *Reader) CString() (string, bool) {
	var out []byte
	for {
		var b [1]byte
		if r.br.Bytes(b[:]) {
			return "", false
		}
		if b[0] == 0x00 {
			return string(out), true
		}
		out = append(out, b[0])
	}
}

// FixedString reads exactly n raw bytes and returns them as a string, with no
// terminator expected or consumed.
func (r *Reader) FixedString(n int) (string, bool) {
	buf := make([]byte, n)
	if r.br.Bytes(buf) {
		return "", false
	}
	return string(buf), true
}

// Remaining returns every byte from the current position to the end of the
// bounded region, consuming them.
func (r *Reader) Remaining() []byte {
	rest, _ := r.br.All()
	return rest
}

// Identifier reads a NUL-terminated block identifier and returns it. It does
// not compare the result with want, which only appears in the short-read
// error; callers check the returned identifier themselves.
func (r *Reader) Identifier(want string) (string, error) {
	got, ok := r.CString()
	if !ok {
		return "", fmt.Errorf("wire: short read on block identifier (wanted %q): %w", want, r.Err())
	}
	return got, nil
}
