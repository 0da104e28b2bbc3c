package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

// samplesCap bounds an allocation hint for a count read straight out of
// untrusted bytes by what the remaining input could actually hold, so a
// crafted huge count (up to a full uint32) can't force a multi-gigabyte
// allocation before a single byte of it has been verified to exist.
func samplesCap(count uint32, remaining int) int {
	if max := remaining / 2; uint32(max) < count {
		return max
	}
	return int(count)
}

func readDataPointsAtScaleFactor(r *wire.Reader) (DataPointsAtScaleFactor, bool) {
	var d DataPointsAtScaleFactor
	if !r.Number(&d.NPoints) || !r.Number(&d.ScaleFactor) {
		return d, false
	}
	d.Data = make([]uint16, 0, samplesCap(d.NPoints, r.Len()))
	for uint32(len(d.Data)) < d.NPoints {
		var sample uint16
		if !r.Number(&sample) {
			return d, false
		}
		d.Data = append(d.Data, sample)
	}
	return d, true
}

func readDataPointsBlock(buf []byte) (*DataPointsBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierDataPoints); err != nil {
		return nil, err
	}

	b := &DataPointsBlock{}
	r.Number(&b.NumberOfDataPoints)
	r.Number(&b.TotalNumberScaleFactorsUsed)

	// A DataPointsAtScaleFactor contributes at least 6 bytes (n_points +
	// scale_factor) on the wire, so cap the slice hint the same way:
	// against what's actually left, not the untrusted count alone.
	want := int(b.TotalNumberScaleFactorsUsed)
	hint := want
	if max := r.Len() / 6; max < hint {
		hint = max
	}
	b.ScaleFactors = make([]DataPointsAtScaleFactor, 0, hint)
	for i := 0; i < want; i++ {
		d, ok := readDataPointsAtScaleFactor(r)
		b.ScaleFactors = append(b.ScaleFactors, d)
		if !ok {
			return nil, fmt.Errorf("sor: short read in %s scale factor %d", IdentifierDataPoints, i)
		}
	}
	if r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierDataPoints, r.Err())
	}
	return b, nil
}

func writeDataPointsBlock(b *DataPointsBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierDataPoints)
	w.Number(b.NumberOfDataPoints)
	w.Number(uint16(len(b.ScaleFactors)))
	for _, sf := range b.ScaleFactors {
		w.Number(uint32(len(sf.Data)))
		w.Number(sf.ScaleFactor)
		for _, sample := range sf.Data {
			w.Number(sample)
		}
	}
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
