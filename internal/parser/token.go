package parser

import (
	"fmt"

	"ctfmt/internal/formatter"
	"ctfmt/internal/types"
)

// TokenKind tells how a token is rendered.
type TokenKind uint8

const (
	// TokenChar is a single template byte; escapes '{{' and '}}' become one.
	TokenChar TokenKind = iota
	// TokenText is a run of template bytes.
	TokenText
	// TokenField is a replacement field.
	TokenField
)

func (k TokenKind) String() string {
	switch k {
	case TokenChar:
		return "char"
	case TokenText:
		return "text"
	case TokenField:
		return "field"
	}
	return "invalid"
}

// Token is one step of a plan. Offset and Size locate the source bytes;
// for fields they cover the braces.
type Token struct {
	Kind   TokenKind
	Offset uint32
	Size   uint32
	// Field only.
	Index     int32
	Type      types.Type
	Formatter formatter.Compiled
}

func (t Token) String() string {
	switch t.Kind {
	case TokenField:
		return fmt.Sprintf("field %d-%d arg=%d type=%s", t.Offset, t.Offset+t.Size, t.Index, t.Type)
	default:
		return fmt.Sprintf("%s %d-%d", t.Kind, t.Offset, t.Offset+t.Size)
	}
}
