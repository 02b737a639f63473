package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size for SetSize
const (
	SizeNormal = 0x00
	SizeDouble = 0x11
)

// Document builds an ESC/POS byte stream. Text is laid out in a fixed number
// of columns (32 for 58mm paper, 48 for 80mm) and encoded as code page 437,
// which the printer is switched to on Init.
type Document struct {
	buf   bytes.Buffer
	width int
	enc   *encoding.Encoder
}

// NewDocument creates a document for the given character width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{
		width: width,
		enc:   encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder()),
	}
	d.Init()
	return d
}

// Width returns the number of characters per line.
func (d *Document) Width() int { return d.width }

// Init resets the printer and selects code page 437.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@', ESC, 't', 0})
	return d
}

// Align sets text alignment.
func (d *Document) Align(a int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(a)})
	return d
}

// Bold enables or disables emphasis.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetSize sets the character size.
func (d *Document) SetSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.write(s)
	d.buf.WriteByte(LF)
	return d
}

// Rule writes a full-width line of c.
func (d *Document) Rule(c rune) *Document {
	return d.Line(strings.Repeat(string(c), d.width))
}

// Row writes left and right on one line, right-aligning right. A left part
// too long for the line is cut short.
func (d *Document) Row(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	left = truncate(left, room)
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		gap = 1
	}
	return d.Line(left + strings.Repeat(" ", gap) + right)
}

// Feed writes n blank lines.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut performs a partial paper cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) write(s string) {
	encoded, err := d.enc.String(s)
	if err != nil {
		encoded = s
	}
	d.buf.WriteString(encoded)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
