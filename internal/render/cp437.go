package render

// CP437 codes used by the HUD and deck view.
const (
	GlyphLightShade byte = 176 // ░
	GlyphMedShade   byte = 177 // ▒
	GlyphDarkShade  byte = 178 // ▓
	GlyphBoxV       byte = 179 // │
	GlyphBoxTR      byte = 191 // ┐
	GlyphBoxBL      byte = 192 // └
	GlyphBoxH       byte = 196 // ─
	GlyphBoxBR      byte = 217 // ┘
	GlyphBoxTL      byte = 218 // ┌
	GlyphFullBlock  byte = 219 // █
	GlyphSquare     byte = 254 // ■
)

// CP437ToUnicode maps a CP437 code to the rune it displays. Codes the
// renderers never draw map to '?'.
var CP437ToUnicode = func() [256]rune {
	var t [256]rune
	for i := range t {
		t[i] = '?'
	}
	for i := 32; i < 127; i++ {
		t[i] = rune(i)
	}
	t[0] = ' '
	special := map[byte]rune{
		176: '░', 177: '▒', 178: '▓', 179: '│', 180: '┤',
		191: '┐', 192: '└', 193: '┴', 194: '┬', 195: '├',
		196: '─', 197: '┼', 217: '┘', 218: '┌', 219: '█',
		220: '▄', 221: '▌', 222: '▐', 223: '▀', 254: '■',
	}
	for code, r := range special {
		t[code] = r
	}
	return t
}()
