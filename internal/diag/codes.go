package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структура шаблона
	FmtInfo             Code = 1000
	FmtUnexpectedEnd    Code = 1001
	FmtUnexpectedChar   Code = 1002
	FmtUnmatchedClose   Code = 1003
	FmtUnterminatedSpec Code = 1004
	FmtTemplateTooLarge Code = 1005
	FmtUnbalancedSpec   Code = 1006

	// Индексы аргументов
	IdxInfo              Code = 2000
	IdxManualInAutomatic Code = 2001
	IdxAutomaticInManual Code = 2002
	IdxOverflow          Code = 2003
	IdxLeadingZero       Code = 2004
	IdxOutOfBounds       Code = 2005
	IdxNegative          Code = 2006
	IdxUnexpectedChar    Code = 2007
	IdxUnexpectedEnd     Code = 2008

	// Совместимость типов
	TypInfo             Code = 3000
	TypNotFormattable   Code = 3001
	TypOptionNotAllowed Code = 3002
	TypArgIDNotInteger  Code = 3003
	TypDisplayType      Code = 3004
	TypPresentation     Code = 3005

	// Кодировка
	EncInfo                 Code = 4000
	EncContinuationStart    Code = 4001
	EncInvalidLead          Code = 4002
	EncExpectedContinuation Code = 4003
	EncInvalidScalar        Code = 4004

	// Содержимое спецификации
	SpcInfo              Code = 5000
	SpcWidthLeadingZero  Code = 5001
	SpcWidthOverflow     Code = 5002
	SpcPrecisionOverflow Code = 5003
	SpcPrecisionMissing  Code = 5004
	SpcTrailing          Code = 5005
	SpcChrono            Code = 5006
	SpcCustom            Code = 5007
)

var (
	codeDescription = map[Code]string{
		UnknownCode:             "Unknown error",
		FmtInfo:                 "Template information",
		FmtUnexpectedEnd:        "Unexpected end of the template",
		FmtUnexpectedChar:       "Unexpected character in the template",
		FmtUnmatchedClose:       "Unescaped closing brace",
		FmtUnterminatedSpec:     "Unterminated format-spec",
		FmtTemplateTooLarge:     "Template too large",
		FmtUnbalancedSpec:       "Unbalanced braces in format-spec",
		IdxInfo:                 "Argument index information",
		IdxManualInAutomatic:    "Manual arg-id in automatic mode",
		IdxAutomaticInManual:    "Automatic arg-id in manual mode",
		IdxOverflow:             "Arg-id too large",
		IdxLeadingZero:          "Arg-id with leading zero",
		IdxOutOfBounds:          "Arg-id out of bounds",
		IdxNegative:             "Negative arg-id",
		IdxUnexpectedChar:       "Unexpected character in arg-id",
		IdxUnexpectedEnd:        "Unexpected end in arg-id",
		TypInfo:                 "Type information",
		TypNotFormattable:       "Argument type is not formattable",
		TypOptionNotAllowed:     "Option not allowed for the argument type",
		TypArgIDNotInteger:      "Width or precision arg-id is not an integer",
		TypDisplayType:          "Display type not valid for the argument",
		TypPresentation:         "Option not valid for the display type",
		EncInfo:                 "Encoding information",
		EncContinuationStart:    "Fill starts with a continuation code unit",
		EncInvalidLead:          "Fill starts with an invalid code unit",
		EncExpectedContinuation: "Fill misses a continuation code unit",
		EncInvalidScalar:        "Fill is not a Unicode scalar value",
		SpcInfo:                 "Format-spec information",
		SpcWidthLeadingZero:     "Width with leading zero",
		SpcWidthOverflow:        "Width too large",
		SpcPrecisionOverflow:    "Precision too large",
		SpcPrecisionMissing:     "Precision without value",
		SpcTrailing:             "Trailing characters in format-spec",
		SpcChrono:               "Invalid chrono specification",
		SpcCustom:               "Custom format-spec rejected",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("IDX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ENC%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SPC%04d", ic)
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
