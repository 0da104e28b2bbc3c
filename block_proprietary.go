package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

// readProprietaryBlock reads the identifier (already known from the map,
// but re-read here as the body-vs-map sanity check like every other block)
// and captures the remainder of the slice verbatim.
func readProprietaryBlock(buf []byte, wantIdentifier string) (*ProprietaryBlock, error) {
	r := wire.NewReader(buf)
	got, ok := r.CString()
	if !ok {
		return nil, fmt.Errorf("sor: short read on proprietary block identifier: %w", r.Err())
	}
	if got != wantIdentifier {
		return nil, ErrIdentifierMismatch
	}
	return &ProprietaryBlock{Header: got, Data: r.Remaining()}, nil
}

func writeProprietaryBlock(b ProprietaryBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(b.Header)
	w.Raw(b.Data)
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
