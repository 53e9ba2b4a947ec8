// Package spec parses the standard format-spec mini language:
//
//	[[fill]align][sign][#][0][width][.precision][L][n][type]
//
// Each formatter decides which options it permits; Parse reports a
// forbidden option at the character that introduced it.
package spec

import (
	"ctfmt/internal/argid"
	"ctfmt/internal/source"
	"ctfmt/internal/types"
)

// Fields is the set of options a formatter permits. Width is always parsed.
type Fields uint16

const (
	FillAlign Fields = 1 << iota
	Sign
	AlternateForm
	ZeroPadding
	Precision
	LocaleSpecificForm
	ClearBrackets
	Type
	// ConsumeAll requires the spec to end at '}' once all options were read.
	ConsumeAll
)

// Has reports whether every option of o is in f.
func (f Fields) Has(o Fields) bool {
	return f&o == o
}

// Common permission sets.
const (
	Integral = FillAlign | Sign | AlternateForm | ZeroPadding | LocaleSpecificForm | Type | ConsumeAll
	Floating = FillAlign | Sign | AlternateForm | ZeroPadding | Precision | LocaleSpecificForm | Type | ConsumeAll
	Text     = FillAlign | Precision | Type | ConsumeAll
	Address  = FillAlign | ZeroPadding | Type | ConsumeAll
)

type Align uint8

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
	// AlignZeroPadding pads numbers with zeros after the sign and prefix.
	AlignZeroPadding
)

type SignMode uint8

const (
	SignDefault SignMode = iota
	SignMinus
	SignPlus
	SignSpace
)

// NoArg marks a width or precision given literally.
const NoArg int32 = -1

// Spec holds the options read from one format-spec.
type Spec struct {
	Fill      rune
	Align     Align
	Sign      SignMode
	Alternate bool
	Locale    bool
	// ClearBrackets drops the surrounding brackets of ranges and maps.
	ClearBrackets bool
	// Type is the display type character, 0 when absent.
	Type byte

	// Width is 0 when absent; WidthArg is the argument index of a nested
	// width or NoArg.
	Width    int32
	WidthArg int32
	// Precision is -1 when absent.
	Precision    int32
	PrecisionArg int32

	// Offsets of the options, for diagnostics raised after parsing.
	Begin  uint32
	SignAt uint32
	AltAt  uint32
	ZeroAt uint32
	TypeAt uint32
}

// Defaults returns a spec with nothing set.
func Defaults() Spec {
	return Spec{
		Fill:         ' ',
		WidthArg:     NoArg,
		Precision:    -1,
		PrecisionArg: NoArg,
	}
}

// HasPrecision reports whether a precision was given literally or by
// argument.
func (s Spec) HasPrecision() bool {
	return s.Precision >= 0 || s.PrecisionArg != NoArg
}

// HasWidth reports whether a width was given literally or by argument.
func (s Spec) HasWidth() bool {
	return s.Width > 0 || s.WidthArg != NoArg
}

// Input is what every formatter sees of the template being compiled.
type Input struct {
	Tpl  source.Template
	Args []types.Type
}

// Status is the outcome of Parse: the offset of the first unconsumed
// character, the updated arg-id state and the settings.
type Status struct {
	Offset uint32
	State  argid.State
	Spec   Spec
}
