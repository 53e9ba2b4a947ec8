package scan

import (
	"ctfmt/internal/source"
)

// Cursor is a forward-only position in a template.
type Cursor struct {
	Tpl source.Template
	Off uint32
}

// NewCursor creates a cursor at off.
func NewCursor(tpl source.Template, off uint32) Cursor {
	return Cursor{Tpl: tpl, Off: off}
}

// EOF проверяет, достигнут ли конец шаблона
func (c *Cursor) EOF() bool {
	return c.Tpl.AtEnd(c.Off)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.Tpl.At(c.Off)
}

// Peek2 читает следующий за текущим байт
func (c *Cursor) Peek2() byte {
	return c.Tpl.At(c.Off + 1)
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Tpl.At(c.Off)
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Tpl.At(c.Off) == b {
		c.Off++
		return true
	}
	return false
}
