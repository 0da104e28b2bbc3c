package sor

import (
	"fmt"
	"os"
)

// Parse decodes a complete SOR file from data. The map is parsed first and
// is the only mandatory block: its absence or a short read on its mandatory
// fields is fatal and returned as an error. Every other block is read
// best-effort — a malformed or short optional block is left absent on the
// returned File rather than aborting the parse.
func Parse(data []byte) (*File, error) {
	m, mapLen, err := readMapBlock(data)
	if err != nil {
		return nil, &DataError{Offset: 0, Cause: err}
	}

	var total int64
	for _, info := range m.BlockInfo {
		if info.Size < 0 {
			return nil, &DataError{Offset: 0, Cause: ErrNegativeBlockSize}
		}
		total += int64(info.Size)
	}
	if total > int64(len(data)) {
		return nil, &DataError{Offset: 0, Cause: ErrTruncatedBlockTable}
	}

	f := &File{Map: m}

	offset := mapLen
	identifiers := standardIdentifiers()
	for i, info := range m.BlockInfo {
		size := int64(info.Size)
		if info.Identifier == IdentifierMap {
			// The map's own entry occupies the space already consumed
			// reading the map itself; it is not re-read as a body.
			if i != 0 {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: ErrIdentifierMismatch}
			}
			continue
		}

		if offset+size > int64(len(data)) {
			offset += size
			continue
		}
		block := data[offset : offset+size]
		offset += size

		if !identifiers[info.Identifier] {
			prop, err := readProprietaryBlock(block, info.Identifier)
			if err != nil {
				if err == ErrIdentifierMismatch {
					return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
				}
				continue
			}
			f.ProprietaryBlocks = append(f.ProprietaryBlocks, *prop)
			continue
		}

		switch info.Identifier {
		case IdentifierGeneralParameters:
			if b, err := readGeneralParametersBlock(block); err == nil {
				f.GeneralParameters = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierSupplierParameters:
			if b, err := readSupplierParametersBlock(block); err == nil {
				f.SupplierParameters = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierFixedParameters:
			if b, err := readFixedParametersBlock(block); err == nil {
				f.FixedParameters = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierKeyEvents:
			if b, err := readKeyEventsBlock(block); err == nil {
				f.KeyEvents = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierLinkParameters:
			if b, err := readLinkParametersBlock(block); err == nil {
				f.LinkParameters = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierDataPoints:
			if b, err := readDataPointsBlock(block); err == nil {
				f.DataPoints = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		case IdentifierChecksum:
			if b, err := readChecksumBlock(block); err == nil {
				f.Checksum = b
			} else if err == ErrIdentifierMismatch {
				return nil, &BlockError{Identifier: info.Identifier, Index: i, Cause: err}
			}
		}
	}

	return f, nil
}

// ParsePath reads the file at path fully into memory and parses it.
// Streaming is a non-goal (§5): the whole file is read before parsing
// begins.
func ParsePath(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sor: reading %s: %w", path, err)
	}
	return Parse(data)
}
