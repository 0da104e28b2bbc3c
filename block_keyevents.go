package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

func readKeyEventCommon(r *wire.Reader) (KeyEvent, bool) {
	var e KeyEvent
	ok := true
	r.Number(&e.EventNumber)
	r.Number(&e.EventPropagationTime)
	r.Number(&e.AttenuationCoefficientLeadInFiber)
	r.Number(&e.EventLoss)
	r.Number(&e.EventReflectance)
	s, k := r.FixedString(6)
	e.EventCode = s
	ok = ok && k
	s, k = r.FixedString(2)
	e.LossMeasurementTechnique = s
	ok = ok && k
	r.Number(&e.MarkerLocation1)
	r.Number(&e.MarkerLocation2)
	r.Number(&e.MarkerLocation3)
	r.Number(&e.MarkerLocation4)
	r.Number(&e.MarkerLocation5)
	e.Comment, _ = r.CString()
	return e, ok
}

func readLastKeyEvent(r *wire.Reader) (LastKeyEvent, bool) {
	common, ok := readKeyEventCommon(r)
	last := LastKeyEvent{KeyEvent: common}
	r.Number(&last.EndToEndLoss)
	r.Number(&last.EndToEndMarkerPosition1)
	r.Number(&last.EndToEndMarkerPosition2)
	r.Number(&last.OpticalReturnLoss)
	r.Number(&last.OpticalReturnLossMarkerPosition1)
	r.Number(&last.OpticalReturnLossMarkerPosition2)
	return last, ok
}

// readKeyEventsBlock reads the number of key events (N), N KeyEvent
// records, then one trailing LastKeyEvent — N+1 records on the wire.
func readKeyEventsBlock(buf []byte) (*KeyEventsBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierKeyEvents); err != nil {
		return nil, err
	}

	b := &KeyEventsBlock{}
	r.Number(&b.NumberOfKeyEvents)

	b.KeyEvents = make([]KeyEvent, b.NumberOfKeyEvents)
	for i := range b.KeyEvents {
		e, ok := readKeyEventCommon(r)
		b.KeyEvents[i] = e
		if !ok {
			return nil, fmt.Errorf("sor: short read in %s event %d", IdentifierKeyEvents, i)
		}
	}

	last, ok := readLastKeyEvent(r)
	b.LastKeyEvent = last
	if !ok || r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierKeyEvents, r.Err())
	}
	return b, nil
}

func writeKeyEventCommon(w *wire.Writer, e KeyEvent) {
	w.Number(e.EventNumber)
	w.Number(e.EventPropagationTime)
	w.Number(e.AttenuationCoefficientLeadInFiber)
	w.Number(e.EventLoss)
	w.Number(e.EventReflectance)
	w.FixedString(e.EventCode, 6)
	w.FixedString(e.LossMeasurementTechnique, 2)
	w.Number(e.MarkerLocation1)
	w.Number(e.MarkerLocation2)
	w.Number(e.MarkerLocation3)
	w.Number(e.MarkerLocation4)
	w.Number(e.MarkerLocation5)
	w.CString(e.Comment)
}

func writeKeyEventsBlock(b *KeyEventsBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierKeyEvents)

	n := uint16(len(b.KeyEvents))
	w.Number(n)
	for _, e := range b.KeyEvents {
		writeKeyEventCommon(w, e)
	}

	last := b.LastKeyEvent
	writeKeyEventCommon(w, last.KeyEvent)
	w.Number(last.EndToEndLoss)
	w.Number(last.EndToEndMarkerPosition1)
	w.Number(last.EndToEndMarkerPosition2)
	w.Number(last.OpticalReturnLoss)
	w.Number(last.OpticalReturnLossMarkerPosition1)
	w.Number(last.OpticalReturnLossMarkerPosition2)

	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
