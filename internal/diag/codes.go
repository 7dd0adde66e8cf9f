package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Регулярные выражения
	RxInfo           Code = 1000
	RxGreedyClass    Code = 1001 // shorthand inside a class is covered by another shorthand
	RxMalformedClass Code = 1002 // unterminated class or dangling escape
	RxBadDelimiter   Code = 1003 // PCRE pattern with a missing or invalid delimiter

	// Ошибки I/O
	IOLoadFileError   Code = 4001
	IOUnsupportedFile Code = 4002
	IOHostSyntax      Code = 4003

	// Конфигурация
	CfgInfo    Code = 5000
	CfgInvalid Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	RxInfo:            "Regular expression information",
	RxGreedyClass:     "Greedy character class",
	RxMalformedClass:  "Malformed character class",
	RxBadDelimiter:    "Invalid pattern delimiter",
	IOLoadFileError:   "I/O load file error",
	IOUnsupportedFile: "Unsupported source file",
	IOHostSyntax:      "Host file could not be parsed",
	CfgInfo:           "Configuration information",
	CfgInvalid:        "Invalid configuration",
	ObsInfo:           "Observability information",
	ObsTimings:        "Pipeline timings",
}

// ID returns the stable identifier used in output and baselines, e.g. "RX1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("RX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
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

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCode is the inverse of Code.ID.
func ParseCode(id string) (Code, bool) {
	for c := range codeDescription {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
