package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown failure, placeholder until classified
	UnknownCode Code = 0

	// Classification (is this Go type a class, and in which form?)
	ClsInfo           Code = 1000
	ClsNotAStruct     Code = 1001
	ClsPointerToClass Code = 1002
	ClsNoBase         Code = 1003
	ClsMarkerNamed    Code = 1004
	ClsMarkerWithData Code = 1005
	ClsMarkerAndBase  Code = 1006
	ClsBaseNotPointer Code = 1007
	ClsBaseNotClass   Code = 1008
	ClsBaseMisnamed   Code = 1009
	ClsBaseCycle      Code = 1010
	ClsClassEmbed     Code = 1011
	ClsDuplicateName  Code = 1012

	// Relationship queries and assertions
	RelInfo      Code = 2000
	RelNotAClass Code = 2001
	RelNotA      Code = 2002
	RelNoneOf    Code = 2003

	// Cast verification
	CastInfo        Code = 3000
	CastNotPointer  Code = 3001
	CastOptionality Code = 3002
	CastReadOnly    Code = 3003
	CastUnrelated   Code = 3004

	// Manifest loading and checks
	ManInfo         Code = 4000
	ManLoadFailed   Code = 4001
	ManSyntax       Code = 4002
	ManMissingPkg   Code = 4003
	ManBadClassName Code = 4004
	ManDuplicate    Code = 4005
	ManUnknownBase  Code = 4006
	ManBaseCycle    Code = 4007
	ManBadShape     Code = 4008
	ManBadCheck     Code = 4009
	ManCheckFailed  Code = 4010
	ManUnknownClass Code = 4011

	// Code generation
	GenInfo         Code = 5000
	GenWriteFailed  Code = 5001
	GenFormatFailed Code = 5002
	GenBadPackage   Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:       "Unknown error",
		ClsInfo:           "Classification information",
		ClsNotAStruct:     "Type is not a struct",
		ClsPointerToClass: "Pointer given where a class is expected",
		ClsNoBase:         "Struct declares no base association",
		ClsMarkerNamed:    "Base marker must be embedded, not named",
		ClsMarkerWithData: "Handle class must not carry data fields",
		ClsMarkerAndBase:  "Marker embed and Base field are exclusive",
		ClsBaseNotPointer: "Base field must be a single pointer",
		ClsBaseNotClass:   "Base field does not point at a class",
		ClsBaseMisnamed:   "Base pointer field has the wrong name",
		ClsBaseCycle:      "Base chain forms a cycle",
		ClsClassEmbed:     "Class embedded where a marker is expected",
		ClsDuplicateName:  "Class name already registered",
		RelInfo:           "Relationship information",
		RelNotAClass:      "Relationship operand is not a class",
		RelNotA:           "Class is not derived from the asserted base",
		RelNoneOf:         "Class matches none of the asserted bases",
		CastInfo:          "Cast information",
		CastNotPointer:    "Cast operand is not a pointer to a class",
		CastOptionality:   "Cast changes optionality",
		CastReadOnly:      "Cast discards read-only",
		CastUnrelated:     "Cast between unrelated classes",
		ManInfo:           "Manifest information",
		ManLoadFailed:     "Manifest could not be read",
		ManSyntax:         "Manifest is not valid TOML",
		ManMissingPkg:     "Manifest has no [package] section",
		ManBadClassName:   "Invalid class name in manifest",
		ManDuplicate:      "Duplicate class in manifest",
		ManUnknownBase:    "Manifest class names an unknown base",
		ManBaseCycle:      "Manifest base chain forms a cycle",
		ManBadShape:       "Malformed shape string in check",
		ManBadCheck:       "Malformed check entry",
		ManCheckFailed:    "Check expectation not met",
		ManUnknownClass:   "Check names an unknown class",
		GenInfo:           "Generation information",
		GenWriteFailed:    "Generated file could not be written",
		GenFormatFailed:   "Generated source failed to format",
		GenBadPackage:     "Invalid generated package name",
		ObsInfo:           "Observability information",
		ObsTimings:        "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CLS%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("REL%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CAST%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
