package sor

import (
	"github.com/jamesharrison/gosor/internal/wire"
)

// readMapBlock decodes the map starting at the beginning of buf. The map's
// own entry is, per this format's invariant, the first literal BlockInfo in
// the list — it is not implicit.
func readMapBlock(buf []byte) (*MapBlock, int64, error) {
	r := wire.NewReader(buf)
	id, err := r.Identifier(IdentifierMap)
	if err != nil {
		return nil, 0, ErrMissingMap
	}
	if id != IdentifierMap {
		return nil, 0, ErrMissingMap
	}

	var revision uint16
	var blockSize uint32
	var blockCount uint16
	if !r.Number(&revision) || !r.Number(&blockSize) || !r.Number(&blockCount) {
		return nil, 0, ErrMissingMap
	}

	infos := make([]BlockInfo, 0, blockCount)
	for i := uint16(0); i < blockCount; i++ {
		name, ok := r.CString()
		if !ok {
			return nil, 0, ErrMissingMap
		}
		var rev uint16
		var size int32
		if !r.Number(&rev) || !r.Number(&size) {
			return nil, 0, ErrMissingMap
		}
		infos = append(infos, BlockInfo{Identifier: name, RevisionNumber: rev, Size: size})
	}
	if r.Err() != nil {
		return nil, 0, ErrMissingMap
	}

	return &MapBlock{
		RevisionNumber: revision,
		BlockSize:      blockSize,
		BlockCount:     blockCount,
		BlockInfo:      infos,
	}, r.Offset(), nil
}

// mapEntrySize is the on-disk size of a single BlockInfo entry: its
// NUL-terminated identifier plus a u16 revision and an i32 size.
func mapEntrySize(identifier string) int {
	return len(identifier) + 1 + 2 + 4
}

// mapFixedFieldsSize is the size of the map's own fixed fields excluding its
// BlockInfo list: the "Map" identifier plus NUL, u16 revision, u32
// block_size, u16 block_count.
const mapFixedFieldsSize = len(IdentifierMap) + 1 + 2 + 4 + 2

// writeMapBlock encodes m, a map whose BlockInfo already includes the map's
// own self-referential entry with a correct size (see buildMap).
func writeMapBlock(m *MapBlock) ([]byte, error) {
	w := wire.NewWriter()
	w.Identifier(IdentifierMap)
	w.Number(m.RevisionNumber)
	w.Number(m.BlockSize)
	w.Number(m.BlockCount)
	for _, info := range m.BlockInfo {
		w.CString(info.Identifier)
		w.Number(info.RevisionNumber)
		w.Number(info.Size)
	}
	if w.Err() != nil {
		return nil, w.Err()
	}
	return w.Bytes(), nil
}

// buildMap computes the map entry for the map itself given the sizes of
// every other block already serialised, and returns the complete MapBlock
// ready to be written. revision is the map's own revision_number.
func buildMap(revision uint16, others []BlockInfo) *MapBlock {
	size := mapFixedFieldsSize
	for _, info := range others {
		size += mapEntrySize(info.Identifier)
	}
	size += mapEntrySize(IdentifierMap)

	infos := make([]BlockInfo, 0, len(others)+1)
	infos = append(infos, BlockInfo{
		Identifier:     IdentifierMap,
		RevisionNumber: revision,
		Size:           int32(size),
	})
	infos = append(infos, others...)

	return &MapBlock{
		RevisionNumber: revision,
		BlockSize:      uint32(size),
		BlockCount:     uint16(len(infos)),
		BlockInfo:      infos,
	}
}
