package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

func readGeneralParametersBlock(buf []byte) (*GeneralParametersBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierGeneralParameters); err != nil {
		return nil, err
	}

	b := &GeneralParametersBlock{}
	var ok1, ok2 bool
	b.LanguageCode, ok1 = r.FixedString(2)
	b.CableID, _ = r.CString()
	b.FiberID, _ = r.CString()
	r.Number(&b.FiberType)
	r.Number(&b.NominalWavelength)
	b.OriginatingLocation, _ = r.CString()
	b.TerminatingLocation, _ = r.CString()
	b.CableCode, _ = r.CString()
	b.CurrentDataFlag, ok2 = r.FixedString(2)
	r.Number(&b.UserOffset)
	r.Number(&b.UserOffsetDistance)
	b.Operator, _ = r.CString()
	b.Comment, _ = r.CString()

	if !ok1 || !ok2 || r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierGeneralParameters, r.Err())
	}
	return b, nil
}

func writeGeneralParametersBlock(b *GeneralParametersBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierGeneralParameters)
	w.FixedString(b.LanguageCode, 2)
	w.CString(b.CableID)
	w.CString(b.FiberID)
	w.Number(b.FiberType)
	w.Number(b.NominalWavelength)
	w.CString(b.OriginatingLocation)
	w.CString(b.TerminatingLocation)
	w.CString(b.CableCode)
	w.FixedString(b.CurrentDataFlag, 2)
	w.Number(b.UserOffset)
	w.Number(b.UserOffsetDistance)
	w.CString(b.Operator)
	w.CString(b.Comment)
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}

// expectIdentifier reads a NUL-terminated identifier and returns a fatal
// error if it doesn't match want. Used at the start of every per-block
// codec's read path as the body-vs-map sanity check described in §4.E.
func expectIdentifier(r *wire.Reader, want string) error {
	got, ok := r.CString()
	if !ok {
		return fmt.Errorf("sor: short read on %s identifier: %w", want, r.Err())
	}
	if got != want {
		return ErrIdentifierMismatch
	}
	return nil
}
