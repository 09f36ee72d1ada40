package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownInput Code = 1001

	// Синтаксические
	SynInfo              Code = 2000
	SynMissingField      Code = 2001
	SynUnrecognizedInput Code = 2002
	SynMissingSeparator  Code = 2003

	// I/O
	IOLoadFileError Code = 4001

	// Проект
	ProjManifest Code = 5001

	// Наблюдаемость
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownInput:      "Input matches no terminal",
	SynInfo:              "Syntax information",
	SynMissingField:      "Missing field",
	SynUnrecognizedInput: "Unrecognized input",
	SynMissingSeparator:  "Missing separator",
	IOLoadFileError:      "Failed to load file",
	ProjManifest:         "Invalid project manifest",
	ObsTimings:           "Timings",
}

var codeKind = map[Code]string{
	SynMissingField:      "MissingField",
	SynUnrecognizedInput: "UnrecognizedInput",
	LexUnknownInput:      "UnrecognizedInput",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Kind returns the external diagnostic kind, or the title for codes without one.
func (c Code) Kind() string {
	if k, ok := codeKind[c]; ok {
		return k
	}
	return c.Title()
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
