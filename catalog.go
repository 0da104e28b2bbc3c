package sor

// Recognised block identifiers, exact byte strings as they appear
// NUL-terminated on the wire. Any other identifier is dispatched to the
// proprietary-block path.
const (
	IdentifierMap                = "Map"
	IdentifierGeneralParameters  = "GenParams"
	IdentifierSupplierParameters = "SupParams"
	IdentifierFixedParameters    = "FxdParams"
	IdentifierKeyEvents          = "KeyEvents"
	IdentifierLinkParameters     = "LnkParams"
	IdentifierDataPoints         = "DataPts"
	IdentifierChecksum           = "Cksum"
)

// defaultRevision is used for a BlockInfo entry regenerated on write when the
// model carries no revision of its own (a newly constructed block rather
// than one parsed from a file).
const defaultRevision uint16 = 200

// standardIdentifiers returns the set of the catalog's recognised block
// identifiers (every identifier except Map, which is handled separately by
// the file assembler).
func standardIdentifiers() map[string]bool {
	return map[string]bool{
		IdentifierGeneralParameters:  true,
		IdentifierSupplierParameters: true,
		IdentifierFixedParameters:    true,
		IdentifierKeyEvents:          true,
		IdentifierLinkParameters:     true,
		IdentifierDataPoints:         true,
		IdentifierChecksum:           true,
	}
}
