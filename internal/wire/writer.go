package wire

import (
	"bytes"

	"github.com/anaminus/parse"
)

// Writer encodes the primitive wire formats used throughout a SOR file into
// an in-memory buffer. Like Reader, it accumulates the first error
// encountered; callers write a whole block's fields and check Err once.
type Writer struct {
	bw  *parse.BinaryWriter
	buf *bytes.Buffer
}

// NewWriter returns a Writer that accumulates into a fresh buffer.
func NewWriter() *Writer {
	buf := &bytes.Buffer{}
	return &Writer{bw: parse.NewBinaryWriter(buf), buf: buf}
}

// Err returns the first error encountered so far, or nil.
func (w *Writer) Err() error {
	return w.bw.Err()
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Number writes v, a sized integer type, in little-endian order.
func (w *Writer) Number(v interface{}) bool {
	return !w.bw.Number(v)
}

// Raw writes b verbatim.
func (w *Writer) Raw(b []byte) bool {
	return !w.bw.Bytes(b)
}

// CString writes s followed by a single NUL terminator. s is written
// verbatim; it is not required to be UTF-8.
func (w *Writer) CString(s string) bool {
	if w.bw.Bytes([]byte(s)) {
		return false
	}
	return !w.bw.Bytes([]byte{0x00})
}

// FixedString writes exactly n bytes of s with no terminator. If s is
// shorter than n it is zero-padded; if longer it is truncated — the SOR
// format has no way to express a fixed-width field overflowing its width, so
// truncation is the only option available to a writer.
func (w *Writer) FixedString(s string, n int) bool {
	buf := make([]byte, n)
	copy(buf, s)
	return !w.bw.Bytes(buf)
}

// Identifier writes a block identifier followed by its NUL terminator; it is
// identical to CString but named for call-site clarity at the top of a block
// encoder.
func (w *Writer) Identifier(id string) bool {
	return w.CString(id)
}
