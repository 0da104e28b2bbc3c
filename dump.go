package sor

import (
	"bufio"
	"fmt"
	"io"
)

// Dump renders a human-readable tree of f's blocks to w: identifiers,
// sizes and field values, for troubleshooting a misbehaving file. It is a
// debug aid, not the JSON/CBOR output of the external command-line driver.
func Dump(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)

	if f.Map != nil {
		fmt.Fprintf(bw, "Map: revision=%d size=%d blocks=%d\n", f.Map.RevisionNumber, f.Map.BlockSize, f.Map.BlockCount)
		for i, info := range f.Map.BlockInfo {
			fmt.Fprintf(bw, "  [%d] %-10s revision=%d size=%d\n", i, info.Identifier, info.RevisionNumber, info.Size)
		}
	} else {
		fmt.Fprintln(bw, "Map: <absent>")
	}

	if g := f.GeneralParameters; g != nil {
		fmt.Fprintf(bw, "GenParams: cable=%q fiber=%q wavelength=%dnm\n", g.CableID, g.FiberID, g.NominalWavelength)
	}
	if s := f.SupplierParameters; s != nil {
		fmt.Fprintf(bw, "SupParams: supplier=%q mainframe=%q/%q\n", s.SupplierName, s.OTDRMainframeID, s.OTDRMainframeSN)
	}
	if fx := f.FixedParameters; fx != nil {
		fmt.Fprintf(bw, "FxdParams: wavelength=%d pulse_widths=%d units=%q\n", fx.ActualWavelength, fx.TotalNPulseWidthsUsed, fx.UnitsOfDistance)
	}
	if k := f.KeyEvents; k != nil {
		fmt.Fprintf(bw, "KeyEvents: count=%d\n", k.NumberOfKeyEvents)
		for i, e := range k.KeyEvents {
			fmt.Fprintf(bw, "  [%d] code=%q loss=%d reflectance=%d\n", i, e.EventCode, e.EventLoss, e.EventReflectance)
		}
		fmt.Fprintf(bw, "  [last] code=%q end_to_end_loss=%d\n", k.LastKeyEvent.EventCode, k.LastKeyEvent.EndToEndLoss)
	}
	if l := f.LinkParameters; l != nil {
		fmt.Fprintf(bw, "LnkParams: landmarks=%d\n", l.NumberOfLandmarks)
	}
	if d := f.DataPoints; d != nil {
		fmt.Fprintf(bw, "DataPts: points=%d scale_factors=%d\n", d.NumberOfDataPoints, d.TotalNumberScaleFactorsUsed)
		for i, sf := range d.ScaleFactors {
			fmt.Fprintf(bw, "  [%d] scale=%d n=%d\n", i, sf.ScaleFactor, sf.NPoints)
		}
	}
	for i, p := range f.ProprietaryBlocks {
		fmt.Fprintf(bw, "Proprietary[%d]: %q (%d bytes)\n", i, p.Header, len(p.Data))
	}
	if c := f.Checksum; c != nil {
		fmt.Fprintf(bw, "Cksum: %d\n", c.Checksum)
	}

	return bw.Flush()
}
