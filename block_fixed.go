package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

func readFixedParametersBlock(buf []byte) (*FixedParametersBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierFixedParameters); err != nil {
		return nil, err
	}

	b := &FixedParametersBlock{}
	r.Number(&b.DateTimeStamp)
	units, ok := r.FixedString(2)
	b.UnitsOfDistance = units
	r.Number(&b.ActualWavelength)
	r.Number(&b.AcquisitionOffset)
	r.Number(&b.AcquisitionOffsetDistance)
	r.Number(&b.TotalNPulseWidthsUsed)

	p := int(b.TotalNPulseWidthsUsed)
	b.PulseWidthsUsed = make([]uint16, p)
	for i := 0; i < p; i++ {
		r.Number(&b.PulseWidthsUsed[i])
	}
	b.DataSpacing = make([]int32, p)
	for i := 0; i < p; i++ {
		r.Number(&b.DataSpacing[i])
	}
	b.NDataPointsForPulseWidthsUsed = make([]int32, p)
	for i := 0; i < p; i++ {
		r.Number(&b.NDataPointsForPulseWidthsUsed[i])
	}

	r.Number(&b.GroupIndex)
	r.Number(&b.BackscatterCoefficient)
	r.Number(&b.NumberOfAverages)
	r.Number(&b.AveragingTime)
	r.Number(&b.AcquisitionRange)
	r.Number(&b.AcquisitionRangeDistance)
	r.Number(&b.FrontPanelOffset)
	r.Number(&b.NoiseFloorLevel)
	r.Number(&b.NoiseFloorScaleFactor)
	r.Number(&b.PowerOffsetFirstPoint)
	r.Number(&b.LossThreshold)
	r.Number(&b.ReflectanceThreshold)
	r.Number(&b.EndOfFibreThreshold)
	traceType, ok2 := r.FixedString(2)
	b.TraceType = traceType
	r.Number(&b.WindowCoordinate1)
	r.Number(&b.WindowCoordinate2)
	r.Number(&b.WindowCoordinate3)
	r.Number(&b.WindowCoordinate4)

	if !ok || !ok2 || r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierFixedParameters, r.Err())
	}
	return b, nil
}

// normalizedPulseWidthCount returns how many elements of the three parallel
// pulse-width sequences can actually be written: the smallest of
// TotalNPulseWidthsUsed and the three slice lengths. The file format has no
// way to express a caller-introduced mismatch, so the writer truncates
// rather than failing (§4.D).
func (b *FixedParametersBlock) normalizedPulseWidthCount() int {
	n := int(b.TotalNPulseWidthsUsed)
	if l := len(b.PulseWidthsUsed); l < n {
		n = l
	}
	if l := len(b.DataSpacing); l < n {
		n = l
	}
	if l := len(b.NDataPointsForPulseWidthsUsed); l < n {
		n = l
	}
	return n
}

func writeFixedParametersBlock(b *FixedParametersBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierFixedParameters)
	w.Number(b.DateTimeStamp)
	w.FixedString(b.UnitsOfDistance, 2)
	w.Number(b.ActualWavelength)
	w.Number(b.AcquisitionOffset)
	w.Number(b.AcquisitionOffsetDistance)

	n := b.normalizedPulseWidthCount()
	w.Number(uint16(n))
	for i := 0; i < n; i++ {
		w.Number(b.PulseWidthsUsed[i])
	}
	for i := 0; i < n; i++ {
		w.Number(b.DataSpacing[i])
	}
	for i := 0; i < n; i++ {
		w.Number(b.NDataPointsForPulseWidthsUsed[i])
	}

	w.Number(b.GroupIndex)
	w.Number(b.BackscatterCoefficient)
	w.Number(b.NumberOfAverages)
	w.Number(b.AveragingTime)
	w.Number(b.AcquisitionRange)
	w.Number(b.AcquisitionRangeDistance)
	w.Number(b.FrontPanelOffset)
	w.Number(b.NoiseFloorLevel)
	w.Number(b.NoiseFloorScaleFactor)
	w.Number(b.PowerOffsetFirstPoint)
	w.Number(b.LossThreshold)
	w.Number(b.ReflectanceThreshold)
	w.Number(b.EndOfFibreThreshold)
	w.FixedString(b.TraceType, 2)
	w.Number(b.WindowCoordinate1)
	w.Number(b.WindowCoordinate2)
	w.Number(b.WindowCoordinate3)
	w.Number(b.WindowCoordinate4)

	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
