package types

type Char rune
