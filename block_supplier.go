package sor

import (
	"fmt"

	"github.com/jamesharrison/gosor/internal/wire"
)

func readSupplierParametersBlock(buf []byte) (*SupplierParametersBlock, error) {
	r := wire.NewReader(buf)
	if err := expectIdentifier(r, IdentifierSupplierParameters); err != nil {
		return nil, err
	}

	b := &SupplierParametersBlock{}
	b.SupplierName, _ = r.CString()
	b.OTDRMainframeID, _ = r.CString()
	b.OTDRMainframeSN, _ = r.CString()
	b.OpticalModuleID, _ = r.CString()
	b.OpticalModuleSN, _ = r.CString()
	b.SoftwareRevision, _ = r.CString()
	b.Other, _ = r.CString()

	if r.Err() != nil {
		return nil, fmt.Errorf("sor: short read in %s: %w", IdentifierSupplierParameters, r.Err())
	}
	return b, nil
}

func writeSupplierParametersBlock(b *SupplierParametersBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierSupplierParameters)
	w.CString(b.SupplierName)
	w.CString(b.OTDRMainframeID)
	w.CString(b.OTDRMainframeSN)
	w.CString(b.OpticalModuleID)
	w.CString(b.OpticalModuleSN)
	w.CString(b.SoftwareRevision)
	w.CString(b.Other)
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}
