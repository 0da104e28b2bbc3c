// Package sor reads, represents and writes Bellcore/Telcordia SR-4731 "SOR"
// files — the interchange format for optical time-domain reflectometer
// (OTDR) traces. A SOR file is a little-endian binary container of named,
// variable-length blocks whose layout is described by an index ("map")
// block at the front of the file.
package sor

// File is the root aggregate. It owns exactly one Map and optionally one of
// each standard block; every optional slot is nil when the parser could not
// locate or decode it. Absence is a non-fatal signal, not an error.
type File struct {
	Map                *MapBlock
	GeneralParameters  *GeneralParametersBlock
	SupplierParameters *SupplierParametersBlock
	FixedParameters    *FixedParametersBlock
	KeyEvents          *KeyEventsBlock
	LinkParameters     *LinkParametersBlock
	DataPoints         *DataPointsBlock
	ProprietaryBlocks  []ProprietaryBlock
	Checksum           *ChecksumBlock
}

// MapBlock is the mandatory file index. It lists every block in the file,
// including itself, in on-disk order.
type MapBlock struct {
	RevisionNumber uint16
	BlockSize      uint32
	BlockCount     uint16
	BlockInfo      []BlockInfo
}

// BlockInfo records one block's identifier, revision and on-disk size as
// carried in the map.
type BlockInfo struct {
	Identifier     string
	RevisionNumber uint16
	Size           int32
}

// GeneralParametersBlock carries test-identifying information: cable/fibre
// identifiers, locations, the nominal wavelength and the user offset.
type GeneralParametersBlock struct {
	LanguageCode         string
	CableID              string
	FiberID              string
	FiberType            uint16
	NominalWavelength    uint16
	OriginatingLocation  string
	TerminatingLocation  string
	CableCode            string
	CurrentDataFlag      string
	UserOffset           int32
	UserOffsetDistance   int32
	Operator             string
	Comment              string
}

// SupplierParametersBlock carries identifying information for the OTDR unit
// that produced the file.
type SupplierParametersBlock struct {
	SupplierName     string
	OTDRMainframeID  string
	OTDRMainframeSN  string
	OpticalModuleID  string
	OpticalModuleSN  string
	SoftwareRevision string
	Other            string
}

// FixedParametersBlock carries acquisition metadata, including three
// parallel sequences (PulseWidthsUsed, DataSpacing,
// NDataPointsForPulseWidthsUsed) that should share TotalNPulseWidthsUsed's
// length; a caller-introduced mismatch is truncated, not rejected, on
// write.
type FixedParametersBlock struct {
	DateTimeStamp                    uint32
	UnitsOfDistance                  string
	ActualWavelength                 uint16
	AcquisitionOffset                int32
	AcquisitionOffsetDistance        int32
	TotalNPulseWidthsUsed            uint16
	PulseWidthsUsed                  []uint16
	DataSpacing                      []int32
	NDataPointsForPulseWidthsUsed    []int32
	GroupIndex                       int32
	BackscatterCoefficient           uint16
	NumberOfAverages                 int32
	AveragingTime                    uint16
	AcquisitionRange                 int32
	AcquisitionRangeDistance         int32
	FrontPanelOffset                 int32
	NoiseFloorLevel                  uint16
	NoiseFloorScaleFactor            uint16
	PowerOffsetFirstPoint            uint16
	LossThreshold                    uint16
	ReflectanceThreshold             uint16
	EndOfFibreThreshold              uint16
	TraceType                        string
	WindowCoordinate1                int32
	WindowCoordinate2                int32
	WindowCoordinate3                int32
	WindowCoordinate4                int32
}

// KeyEventsBlock is a fixed N events plus a distinguished trailing event
// carrying end-to-end and optical-return-loss figures.
type KeyEventsBlock struct {
	NumberOfKeyEvents uint16
	KeyEvents         []KeyEvent
	LastKeyEvent      LastKeyEvent
}

// KeyEvent describes a single detected feature on the fibre path.
type KeyEvent struct {
	EventNumber                       uint16
	EventPropagationTime              int32
	AttenuationCoefficientLeadInFiber uint16
	EventLoss                        uint16
	EventReflectance                  int32
	EventCode                         string
	LossMeasurementTechnique          string
	MarkerLocation1                   int32
	MarkerLocation2                   int32
	MarkerLocation3                   int32
	MarkerLocation4                   int32
	MarkerLocation5                   int32
	Comment                           string
}

// LastKeyEvent extends KeyEvent with end-to-end loss and optical-return-loss
// figures for the final detected event (usually end-of-fibre).
type LastKeyEvent struct {
	KeyEvent
	EndToEndLoss                       int32
	EndToEndMarkerPosition1            int32
	EndToEndMarkerPosition2            int32
	OpticalReturnLoss                  uint16
	OpticalReturnLossMarkerPosition1   int32
	OpticalReturnLossMarkerPosition2   int32
}

// LinkParametersBlock relates OTDR events to real-world landmarks (GPS
// positions, metre markers). Read-side only: the writer never emits a body
// for this block (see Non-goals).
type LinkParametersBlock struct {
	NumberOfLandmarks uint16
	Landmarks         []Landmark
}

// Landmark is one entry in a LinkParametersBlock.
type Landmark struct {
	LandmarkNumber                      uint16
	LandmarkCode                        string
	LandmarkLocation                    int32
	RelatedEventNumber                  uint16
	GPSLongitude                        int32
	GPSLatitude                         int32
	FiberCorrectionFactorLeadInFiber    uint16
	SheathMarkerEnteringLandmark        int32
	SheathMarkerLeavingLandmark         int32
	UnitsOfSheathMarksLeavingLandmark   string
	ModeFieldDiameterLeavingLandmark    uint16
	Comment                             string
}

// DataPointsBlock holds the raw backscatter trace, one sequence of samples
// per scale factor in use.
type DataPointsBlock struct {
	NumberOfDataPoints         uint32
	TotalNumberScaleFactorsUsed uint16
	ScaleFactors               []DataPointsAtScaleFactor
}

// DataPointsAtScaleFactor is one sequence of samples sharing a scale factor.
// Samples are stored unsigned-16; callers apply ScaleFactor (as 1000*SF)
// externally to recover dB.
type DataPointsAtScaleFactor struct {
	NPoints     uint32
	ScaleFactor uint16
	Data        []uint16
}

// ProprietaryBlock captures any block whose identifier is not in the
// standard catalog. The payload is opaque and preserved verbatim.
type ProprietaryBlock struct {
	Header string
	Data   []byte
}

// ChecksumBlock carries the file's optional CRC-16 checksum.
type ChecksumBlock struct {
	Checksum int16
}
