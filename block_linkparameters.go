package sor

import (
	"errors"
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

// ErrLinkParametersNotWritten is the warning surfaced when a caller asks to
// write a model containing LinkParameters. Read-side is fully modelled;
// write-side is an acknowledged gap pending test corpora (§9), so the
// assembler emits no body and no map entry for this block, and returns this
// as a non-fatal warning rather than silently dropping the data.
var ErrLinkParametersNotWritten = errors.New("sor: link parameters block present but write-side is not implemented; omitted")

func readLandmark(r *wire.Reader) (Landmark, bool) {
	var l Landmark
	ok := true
	r.Number(&l.LandmarkNumber)
	s, k := r.FixedString(2)
	l.LandmarkCode = s
	ok = ok && k
	r.Number(&l.LandmarkLocation)
	r.Number(&l.RelatedEventNumber)
	r.Number(&l.GPSLongitude)
	r.Number(&l.GPSLatitude)
	r.Number(&l.FiberCorrectionFactorLeadInFiber)
	r.Number(&l.SheathMarkerEnteringLandmark)
	r.Number(&l.SheathMarkerLeavingLandmark)
	s, k = r.FixedString(2)
	l.UnitsOfSheathMarksLeavingLandmark = s
	ok = ok && k
	r.Number(&l.ModeFieldDiameterLeavingLandmark)
	l.Comment, _ = r.CString()
	return l, ok
}

func readLinkParametersBlock(buf []byte) (*LinkParametersBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierLinkParameters); err != nil {
		return nil, err
	}

	b := &LinkParametersBlock{}
	r.Number(&b.NumberOfLandmarks)

	b.Landmarks = make([]Landmark, b.NumberOfLandmarks)
	for i := range b.Landmarks {
		l, ok := readLandmark(r)
		b.Landmarks[i] = l
		if !ok {
			return nil, fmt.Errorf("sor: short read in %s landmark %d", IdentifierLinkParameters, i)
		}
	}
	if r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierLinkParameters, r.Err())
	}
	return b, nil
}
