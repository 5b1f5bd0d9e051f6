package gfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spacehole-rogue/shipsim/internal/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// FontAtlas holds the CP437 glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas rasterises the glyphs the HUD uses. Printable ASCII comes from
// basicfont.Face7x13; box-drawing and block codes are drawn by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		cx := (code % AtlasCols) * GlyphWidth
		cy := (code / AtlasCols) * GlyphHeight

		if code >= 32 && code <= 126 {
			drawFontGlyph(img, face, cx, cy, rune(code))
			continue
		}
		if bc, ok := boxChars[byte(code)]; ok {
			drawBoxGlyph(img, cx, cy, bc)
			continue
		}
		drawBlockGlyph(img, cx, cy, byte(code))
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		x := (code % AtlasCols) * GlyphWidth
		y := (code / AtlasCols) * GlyphHeight
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a CP437 character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// drawFontGlyph centers a 7x13 basicfont glyph in a 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX+4, cellY+13),
	}
	d.DrawString(string(r))
}

// boxChars maps codes to line connections: left, right, top, bottom.
var boxChars = map[byte][4]bool{
	render.GlyphBoxV:  {false, false, true, true},
	180:               {true, false, true, true},
	render.GlyphBoxTR: {true, false, false, true},
	render.GlyphBoxBL: {false, true, true, false},
	193:               {true, true, true, false},
	194:               {true, true, false, true},
	195:               {false, true, true, true},
	render.GlyphBoxH:  {true, true, false, false},
	197:               {true, true, true, true},
	render.GlyphBoxBR: {true, false, true, false},
	render.GlyphBoxTL: {false, true, false, true},
}

func drawBoxGlyph(img *image.NRGBA, cellX, cellY int, c [4]bool) {
	w := color.NRGBA{255, 255, 255, 255}
	cx, cy := cellX+7, cellY+7
	hline := func(x0, x1 int) {
		for x := x0; x < x1; x++ {
			img.SetNRGBA(x, cy, w)
			img.SetNRGBA(x, cy+1, w)
		}
	}
	vline := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			img.SetNRGBA(cx, y, w)
			img.SetNRGBA(cx+1, y, w)
		}
	}
	if c[0] {
		hline(cellX, cx+2)
	}
	if c[1] {
		hline(cx, cellX+GlyphWidth)
	}
	if c[2] {
		vline(cellY, cy+2)
	}
	if c[3] {
		vline(cy, cellY+GlyphHeight)
	}
}

// drawBlockGlyph fills shading and block codes with a per-pixel mask.
func drawBlockGlyph(img *image.NRGBA, cellX, cellY int, code byte) {
	var on func(x, y int) bool
	switch code {
	case render.GlyphLightShade:
		on = func(x, y int) bool { return (x+y)%4 == 0 }
	case render.GlyphMedShade:
		on = func(x, y int) bool { return (x+y)%2 == 0 }
	case render.GlyphDarkShade:
		on = func(x, y int) bool { return (x+y)%4 != 0 }
	case render.GlyphFullBlock:
		on = func(int, int) bool { return true }
	case 220:
		on = func(_, y int) bool { return y >= GlyphHeight/2 }
	case 221:
		on = func(x, _ int) bool { return x < GlyphWidth/2 }
	case 222:
		on = func(x, _ int) bool { return x >= GlyphWidth/2 }
	case 223:
		on = func(_, y int) bool { return y < GlyphHeight/2 }
	case render.GlyphSquare:
		on = func(x, y int) bool { return x >= 4 && x < 12 && y >= 4 && y < 12 }
	default:
		return
	}
	w := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if on(x, y) {
				img.SetNRGBA(cellX+x, cellY+y, w)
			}
		}
	}
}
