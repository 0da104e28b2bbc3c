package sor

import (
	"fmt"
	"os"
)

// encodedBlock pairs a block's identifier with its serialised bytes, used
// while assembling the deterministic write order.
type encodedBlock struct {
	identifier string
	revision   uint16
	bytes      []byte
}

// Bytes regenerates a complete file from f: every present block is encoded
// in the deterministic order (Map, GeneralParameters, SupplierParameters,
// FixedParameters, KeyEvents, DataPoints, ProprietaryBlocks in model order,
// Checksum), the map is recomputed to reflect those sizes, and — if f
// carries a ChecksumBlock — a fresh value is computed over everything
// written so far plus the checksum identifier and encoded into the output.
// f itself is never modified (§3: the writer borrows read-only); the
// checksum recorded on f.Checksum is left exactly as the caller set it.
//
// LinkParameters is never written (§4.D, §9): if f.LinkParameters is
// non-nil, Bytes still succeeds but also returns ErrLinkParametersNotWritten
// so the caller can surface the warning.
func (f *File) Bytes() ([]byte, error) {
	var warning error
	var blocks []encodedBlock

	revisionOf := func(parsed *uint16) uint16 {
		if parsed != nil {
			return *parsed
		}
		return defaultRevision
	}

	if f.GeneralParameters != nil {
		b, err := writeGeneralParametersBlock(f.GeneralParameters)
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierGeneralParameters, Cause: err}
		}
		blocks = append(blocks, encodedBlock{IdentifierGeneralParameters, revisionOf(blockRevision(f.Map, IdentifierGeneralParameters)), b})
	}
	if f.SupplierParameters != nil {
		b, err := writeSupplierParametersBlock(f.SupplierParameters)
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierSupplierParameters, Cause: err}
		}
		blocks = append(blocks, encodedBlock{IdentifierSupplierParameters, revisionOf(blockRevision(f.Map, IdentifierSupplierParameters)), b})
	}
	if f.FixedParameters != nil {
		b, err := writeFixedParametersBlock(f.FixedParameters)
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierFixedParameters, Cause: err}
		}
		blocks = append(blocks, encodedBlock{IdentifierFixedParameters, revisionOf(blockRevision(f.Map, IdentifierFixedParameters)), b})
	}
	if f.KeyEvents != nil {
		b, err := writeKeyEventsBlock(f.KeyEvents)
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierKeyEvents, Cause: err}
		}
		blocks = append(blocks, encodedBlock{IdentifierKeyEvents, revisionOf(blockRevision(f.Map, IdentifierKeyEvents)), b})
	}
	if f.LinkParameters != nil {
		warning = ErrLinkParametersNotWritten
	}
	if f.DataPoints != nil {
		b, err := writeDataPointsBlock(f.DataPoints)
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierDataPoints, Cause: err}
		}
		blocks = append(blocks, encodedBlock{IdentifierDataPoints, revisionOf(blockRevision(f.Map, IdentifierDataPoints)), b})
	}
	for i, p := range f.ProprietaryBlocks {
		b, err := writeProprietaryBlock(p)
		if err != nil {
			return nil, &BlockError{Identifier: p.Header, Index: i, Cause: err}
		}
		blocks = append(blocks, encodedBlock{p.Header, revisionOf(blockRevision(f.Map, p.Header)), b})
	}

	hasChecksum := f.Checksum != nil

	infos := make([]BlockInfo, 0, len(blocks)+1)
	for _, b := range blocks {
		infos = append(infos, BlockInfo{Identifier: b.identifier, RevisionNumber: b.revision, Size: int32(len(b.bytes))})
	}
	if hasChecksum {
		infos = append(infos, BlockInfo{Identifier: IdentifierChecksum, RevisionNumber: revisionOf(blockRevision(f.Map, IdentifierChecksum)), Size: int32(checksumBodySize)})
	}

	mapRevision := defaultRevision
	if f.Map != nil {
		mapRevision = f.Map.RevisionNumber
	}
	m := buildMap(mapRevision, infos)
	mapBytes, err := writeMapBlock(m)
	if err != nil {
		return nil, &BlockError{Identifier: IdentifierMap, Cause: err}
	}
	if len(mapBytes) != int(m.BlockSize) {
		return nil, &BlockError{Identifier: IdentifierMap, Cause: fmt.Errorf("sor: computed map size %d does not match encoded length %d", m.BlockSize, len(mapBytes))}
	}

	out := make([]byte, 0, len(mapBytes)+checksumBodySize)
	out = append(out, mapBytes...)
	for _, b := range blocks {
		out = append(out, b.bytes...)
	}

	if hasChecksum {
		// The CRC covers everything written so far plus the checksum
		// identifier itself (§4.F), so that identifier has to be measured
		// before the value it precedes is known. Compute over a scratch
		// copy rather than mutating out, then let writeChecksumBlock — not
		// this method — be the single place that serialises the block.
		crcInput := append(append([]byte{}, out...), IdentifierChecksum...)
		crcInput = append(crcInput, 0x00)
		value := int16(crc16Kermit(crcInput))

		chk, err := writeChecksumBlock(&ChecksumBlock{Checksum: value})
		if err != nil {
			return nil, &BlockError{Identifier: IdentifierChecksum, Cause: err}
		}
		out = append(out, chk...)
	}

	return out, warning
}

// blockRevision returns the revision number a previously-parsed map
// recorded for identifier, or nil if none did (a newly constructed block).
func blockRevision(m *MapBlock, identifier string) *uint16 {
	if m == nil {
		return nil
	}
	for _, info := range m.BlockInfo {
		if info.Identifier == identifier {
			rev := info.RevisionNumber
			return &rev
		}
	}
	return nil
}

// WritePath regenerates f's bytes and writes them to path, truncating any
// existing file.
func (f *File) WritePath(path string) error {
	data, err := f.Bytes()
	if err != nil {
		if err == ErrLinkParametersNotWritten {
			// non-fatal: still write the file, just surface the warning
		} else {
			return err
		}
	}
	if werr := os.WriteFile(path, data, 0o644); werr != nil {
		return fmt.Errorf("sor: writing %s: %w", path, werr)
	}
	return err
}
