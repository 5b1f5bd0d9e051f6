package gfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spacehole-rogue/shipsim/internal/render"
)

// GridRenderer draws the HUD cell buffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas *FontAtlas
	CellW int
	CellH int

	pixel  *ebiten.Image // 1x1 white, scaled for cell backgrounds
	glyphX float64
	glyphY float64
}

// NewGridRenderer creates a renderer with the given atlas and cell size.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &GridRenderer{
		Atlas:  atlas,
		CellW:  cellW,
		CellH:  cellH,
		pixel:  pixel,
		glyphX: float64(cellW) / GlyphWidth,
		glyphY: float64(cellH) / GlyphHeight,
	}
}

// Draw renders buf. Cells inside sel swap foreground and background.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *render.CellBuffer, sel render.Span) {
	for y := 0; y < buf.Rows; y++ {
		row := buf.Cells[y*buf.Cols : (y+1)*buf.Cols]
		for x, cell := range row {
			fg, bg := cell.FG&15, cell.BG&15
			if sel.Contains(x, y) {
				fg, bg = bg, fg
			}
			r.drawCell(screen, x, y, cell.Glyph, fg, bg)
		}
	}
}

func (r *GridRenderer) drawCell(screen *ebiten.Image, x, y int, glyph byte, fg, bg uint8) {
	px, py := float64(x*r.CellW), float64(y*r.CellH)

	var op ebiten.DrawImageOptions
	if bg != render.ColorBlack {
		op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
		op.GeoM.Translate(px, py)
		op.ColorScale.ScaleWithColor(render.Palette[bg])
		screen.DrawImage(r.pixel, &op)
	}
	if glyph == ' ' || glyph == 0 {
		return
	}
	op = ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.glyphX, r.glyphY)
	op.GeoM.Translate(px, py)
	op.ColorScale.ScaleWithColor(render.Palette[fg])
	screen.DrawImage(r.Atlas.Glyph(glyph), &op)
}
