package render

// Cell represents a single character cell on screen.
type Cell struct {
	Glyph byte  // CP437 code (0-255)
	FG    uint8 // Foreground color index (0-15)
	BG    uint8 // Background color index (0-15)
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is a 2D grid of character cells. Front-ends fill it and a
// backend blits it.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a new cell buffer filled with blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a blank cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets all cells to blank (space on black).
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// WriteString writes a string starting at (x, y) and returns the column after
// it. Runes outside Latin-1 become '?'.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	for _, ch := range s {
		if ch > 255 {
			ch = '?'
		}
		b.Set(x, y, byte(ch), fg, bg)
		x++
	}
	return x
}

// Bar draws a width-cell gauge filled to frac.
func (b *CellBuffer) Bar(x, y, width int, frac float64, fg uint8) {
	filled := int(frac*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		if i < filled {
			b.Set(x+i, y, GlyphFullBlock, fg, ColorBlack)
		} else {
			b.Set(x+i, y, GlyphLightShade, ColorDarkGray, ColorBlack)
		}
	}
}

// Box draws a single-line frame with an optional title on the top edge.
func (b *CellBuffer) Box(x, y, w, h int, title string, fg uint8) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		b.Set(x+i, y, GlyphBoxH, fg, ColorBlack)
		b.Set(x+i, y+h-1, GlyphBoxH, fg, ColorBlack)
	}
	for j := 1; j < h-1; j++ {
		b.Set(x, y+j, GlyphBoxV, fg, ColorBlack)
		b.Set(x+w-1, y+j, GlyphBoxV, fg, ColorBlack)
	}
	b.Set(x, y, GlyphBoxTL, fg, ColorBlack)
	b.Set(x+w-1, y, GlyphBoxTR, fg, ColorBlack)
	b.Set(x, y+h-1, GlyphBoxBL, fg, ColorBlack)
	b.Set(x+w-1, y+h-1, GlyphBoxBR, fg, ColorBlack)
	if title != "" {
		b.WriteString(x+2, y, " "+title+" ", ColorLightCyan, ColorBlack)
	}
}

// Text returns row y as a string, for tests and the terminal fallback.
func (b *CellBuffer) Text(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	out := make([]rune, b.Cols)
	for x := 0; x < b.Cols; x++ {
		out[x] = CP437ToUnicode[b.Cells[y*b.Cols+x].Glyph]
	}
	return string(out)
}

// Span is a run of cells on one row that backends draw inverted.
type Span struct {
	Y, X0, X1 int
}

// Contains reports whether (x, y) is inside the span. The zero Span is empty.
func (s Span) Contains(x, y int) bool {
	return y == s.Y && x >= s.X0 && x < s.X1
}
