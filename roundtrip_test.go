package sor

import (
	"reflect"
	"testing"
)

func sampleFile() *File {
	return &File{
		GeneralParameters: &GeneralParametersBlock{
			LanguageCode:        "EN",
			CableID:             "cable-1",
			FiberID:             "fiber-1",
			FiberType:           652,
			NominalWavelength:   1550,
			OriginatingLocation: "A-end",
			TerminatingLocation: "B-end",
			CableCode:           "CC1",
			CurrentDataFlag:     "NC",
			UserOffset:          100,
			UserOffsetDistance:  200,
			Operator:            "tester",
			Comment:             "sample",
		},
		SupplierParameters: &SupplierParametersBlock{
			SupplierName:     "Acme OTDR Co",
			OTDRMainframeID:  "MF-1",
			OTDRMainframeSN:  "SN-1",
			OpticalModuleID:  "OM-1",
			OpticalModuleSN:  "OMSN-1",
			SoftwareRevision: "1.2.3",
			Other:            "calibrated 2026-01-01",
		},
		FixedParameters: &FixedParametersBlock{
			DateTimeStamp:                 1735689600,
			UnitsOfDistance:               "mt",
			ActualWavelength:              1550,
			AcquisitionOffset:             0,
			AcquisitionOffsetDistance:     0,
			TotalNPulseWidthsUsed:         2,
			PulseWidthsUsed:               []uint16{10, 100},
			DataSpacing:                   []int32{1000, 10000},
			NDataPointsForPulseWidthsUsed: []int32{5000, 5000},
			GroupIndex:                    146800,
			BackscatterCoefficient:        0,
			NumberOfAverages:              1000,
			AveragingTime:                 600,
			AcquisitionRange:              200000000,
			AcquisitionRangeDistance:      200000000,
			FrontPanelOffset:              0,
			NoiseFloorLevel:               10200,
			NoiseFloorScaleFactor:         1,
			PowerOffsetFirstPoint:         0,
			LossThreshold:                 200,
			ReflectanceThreshold:          55000,
			EndOfFibreThreshold:           3000,
			TraceType:                     "ST",
			WindowCoordinate1:             0,
			WindowCoordinate2:             0,
			WindowCoordinate3:             0,
			WindowCoordinate4:             0,
		},
		KeyEvents: &KeyEventsBlock{
			NumberOfKeyEvents: 2,
			KeyEvents: []KeyEvent{
				{EventNumber: 1, EventPropagationTime: 1000, EventCode: "1A9999", LossMeasurementTechnique: "2P", Comment: "connector"},
				{EventNumber: 2, EventPropagationTime: 2000, EventCode: "0F9999", LossMeasurementTechnique: "LS", Comment: "splice"},
			},
			LastKeyEvent: LastKeyEvent{
				KeyEvent: KeyEvent{EventNumber: 3, EventPropagationTime: 3000, EventCode: "1E9999", LossMeasurementTechnique: "2P", Comment: "end of fibre"},
				EndToEndLoss:            15000,
				EndToEndMarkerPosition1: 0,
				EndToEndMarkerPosition2: 3000,
				OpticalReturnLoss:       30000,
			},
		},
		DataPoints: &DataPointsBlock{
			NumberOfDataPoints:          15,
			TotalNumberScaleFactorsUsed: 2,
			ScaleFactors: []DataPointsAtScaleFactor{
				{NPoints: 10, ScaleFactor: 1, Data: []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
				{NPoints: 5, ScaleFactor: 1, Data: []uint16{0, 1, 2, 3, 4}},
			},
		},
		ProprietaryBlocks: []ProprietaryBlock{
			{Header: "VndrX", Data: []byte("opaque-vendor-bytes")},
		},
		Checksum: &ChecksumBlock{},
	}
}

func TestRoundTrip(t *testing.T) {
	original := sampleFile()

	encoded, err := original.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	parsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(original.GeneralParameters, parsed.GeneralParameters) {
		t.Fatalf("GeneralParameters mismatch:\n got %+v\nwant %+v", parsed.GeneralParameters, original.GeneralParameters)
	}
	if !reflect.DeepEqual(original.SupplierParameters, parsed.SupplierParameters) {
		t.Fatalf("SupplierParameters mismatch:\n got %+v\nwant %+v", parsed.SupplierParameters, original.SupplierParameters)
	}
	if !reflect.DeepEqual(original.FixedParameters, parsed.FixedParameters) {
		t.Fatalf("FixedParameters mismatch:\n got %+v\nwant %+v", parsed.FixedParameters, original.FixedParameters)
	}
	if !reflect.DeepEqual(original.KeyEvents, parsed.KeyEvents) {
		t.Fatalf("KeyEvents mismatch:\n got %+v\nwant %+v", parsed.KeyEvents, original.KeyEvents)
	}
	if !reflect.DeepEqual(original.DataPoints, parsed.DataPoints) {
		t.Fatalf("DataPoints mismatch:\n got %+v\nwant %+v", parsed.DataPoints, original.DataPoints)
	}
	if !reflect.DeepEqual(original.ProprietaryBlocks, parsed.ProprietaryBlocks) {
		t.Fatalf("ProprietaryBlocks mismatch:\n got %+v\nwant %+v", parsed.ProprietaryBlocks, original.ProprietaryBlocks)
	}
	if parsed.Checksum == nil {
		t.Fatalf("expected a checksum block in the parsed file")
	}

	result := parsed.ValidateChecksum(encoded)
	if result.Status != ChecksumMatches {
		t.Fatalf("got checksum verdict %v, want Matches", result.Status)
	}

	// Map consistency (property 2): first entry is Map, block_count ==
	// len(block_info), and the recorded size matches the encoded length.
	if parsed.Map.BlockInfo[0].Identifier != IdentifierMap {
		t.Fatalf("first map entry is %q, want %q", parsed.Map.BlockInfo[0].Identifier, IdentifierMap)
	}
	if int(parsed.Map.BlockCount) != len(parsed.Map.BlockInfo) {
		t.Fatalf("block_count=%d != len(block_info)=%d", parsed.Map.BlockCount, len(parsed.Map.BlockInfo))
	}
	mapBytes, err := writeMapBlock(parsed.Map)
	if err != nil {
		t.Fatalf("writeMapBlock failed: %v", err)
	}
	if int(parsed.Map.BlockInfo[0].Size) != len(mapBytes) || int(parsed.Map.BlockSize) != len(mapBytes) {
		t.Fatalf("map size=%d block_size=%d, want encoded map length %d", parsed.Map.BlockInfo[0].Size, parsed.Map.BlockSize, len(mapBytes))
	}

	// Re-encoding the reparsed model must be byte-identical (round-trip
	// preservation, property 1).
	reencoded, err := parsed.Bytes()
	if err != nil {
		t.Fatalf("re-Bytes failed: %v", err)
	}
	if string(reencoded) != string(encoded) {
		t.Fatalf("re-encoded bytes differ from original (lengths %d and %d)", len(reencoded), len(encoded))
	}
}

func TestMinimalMapOnlyFile(t *testing.T) {
	f := &File{}
	encoded, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	parsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.GeneralParameters != nil || parsed.SupplierParameters != nil || parsed.FixedParameters != nil {
		t.Fatalf("expected only the map block to be present")
	}
	if len(parsed.Map.BlockInfo) != 1 || parsed.Map.BlockInfo[0].Identifier != IdentifierMap {
		t.Fatalf("expected a single self-referential Map entry, got %+v", parsed.Map.BlockInfo)
	}
	if int(parsed.Map.BlockInfo[0].Size) != len(encoded) {
		t.Fatalf("map size %d does not match encoded file length %d", parsed.Map.BlockInfo[0].Size, len(encoded))
	}

	reencoded, err := parsed.Bytes()
	if err != nil {
		t.Fatalf("re-Bytes failed: %v", err)
	}
	if string(reencoded) != string(encoded) {
		t.Fatalf("minimal map file did not round-trip byte-for-byte")
	}
}

func TestFixedParametersTruncatesOnDesync(t *testing.T) {
	b := &FixedParametersBlock{
		TotalNPulseWidthsUsed:         5,
		PulseWidthsUsed:               []uint16{1, 2, 3},
		DataSpacing:                   []int32{1, 2, 3},
		NDataPointsForPulseWidthsUsed: []int32{1, 2, 3},
		UnitsOfDistance:               "mt",
		TraceType:                     "ST",
	}
	encoded, err := writeFixedParametersBlock(b)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	decoded, err := readFixedParametersBlock(encoded)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if decoded.TotalNPulseWidthsUsed != 3 {
		t.Fatalf("got TotalNPulseWidthsUsed=%d, want 3 (truncated to shortest slice)", decoded.TotalNPulseWidthsUsed)
	}
	if len(decoded.PulseWidthsUsed) != 3 {
		t.Fatalf("got %d pulse widths, want 3", len(decoded.PulseWidthsUsed))
	}
}

func TestKeyEventsNPlusOneOnWire(t *testing.T) {
	b := &KeyEventsBlock{
		NumberOfKeyEvents: 2,
		KeyEvents: []KeyEvent{
			{EventNumber: 1, EventCode: "1A9999", LossMeasurementTechnique: "2P"},
			{EventNumber: 2, EventCode: "0F9999", LossMeasurementTechnique: "LS"},
		},
		LastKeyEvent: LastKeyEvent{
			KeyEvent: KeyEvent{EventNumber: 3, EventCode: "1E9999", LossMeasurementTechnique: "2P"},
		},
	}
	encoded, err := writeKeyEventsBlock(b)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	decoded, err := readKeyEventsBlock(encoded)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(decoded.KeyEvents) != 2 {
		t.Fatalf("got %d key events, want 2", len(decoded.KeyEvents))
	}
	if decoded.LastKeyEvent.EventNumber != 3 {
		t.Fatalf("got last event number %d, want 3", decoded.LastKeyEvent.EventNumber)
	}
}

func TestProprietaryOpacity(t *testing.T) {
	f := &File{ProprietaryBlocks: []ProprietaryBlock{
		{Header: "VndrX", Data: make([]byte, 37)},
	}}
	for i := range f.ProprietaryBlocks[0].Data {
		f.ProprietaryBlocks[0].Data[i] = byte(i)
	}

	encoded, err := f.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	parsed, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(parsed.ProprietaryBlocks) != 1 {
		t.Fatalf("got %d proprietary blocks, want 1", len(parsed.ProprietaryBlocks))
	}
	got := parsed.ProprietaryBlocks[0]
	if got.Header != "VndrX" || len(got.Data) != 37 {
		t.Fatalf("got %+v, want header=VndrX len=37", got)
	}
	if !reflect.DeepEqual(got.Data, f.ProprietaryBlocks[0].Data) {
		t.Fatalf("proprietary bytes not preserved")
	}
}

func TestLinkParametersNotWritten(t *testing.T) {
	f := &File{LinkParameters: &LinkParametersBlock{NumberOfLandmarks: 1, Landmarks: []Landmark{{LandmarkNumber: 1}}}}
	encoded, err := f.Bytes()
	if err != ErrLinkParametersNotWritten {
		t.Fatalf("got err=%v, want ErrLinkParametersNotWritten", err)
	}
	parsed, perr := Parse(encoded)
	if perr != nil {
		t.Fatalf("Parse failed: %v", perr)
	}
	if parsed.LinkParameters != nil {
		t.Fatalf("expected no LnkParams entry in the written map")
	}
}
