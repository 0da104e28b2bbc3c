package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

func readChecksumBlock(buf []byte) (*ChecksumBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierChecksum); err != nil {
		return nil, err
	}
	var v int16
	r.Number(&v)
	if r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierChecksum, r.Err())
	}
	return &ChecksumBlock{Checksum: v}, nil
}

// checksumBodySize is the on-disk size of a ChecksumBlock body: the
// identifier plus NUL, and the 2-byte value.
const checksumBodySize = len(IdentifierChecksum) + 1 + 2

// writeChecksumBlock encodes the checksum identifier and value. The value
// itself must already reflect the CRC over everything written before it,
// including this identifier (see §4.F); computing that is the assembler's
// job, not this codec's.
func writeChecksumBlock(b *ChecksumBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierChecksum)
	w.Number(b.Checksum)
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
