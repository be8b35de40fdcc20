package ticket

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/zettelwerk/ticket-gateway/internal/fontstore"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var monoPalette = []color.Color{color.Black, color.White}

// Render draws the line records onto a fresh greyscale canvas and converts it
// to 1-bit monochrome. A non-empty timestamp is drawn right-aligned at the
// top margin before the first line record.
func (r *Renderer) Render(lines []Line, height int, timestamp string) *image.Paletted {
	canvas := image.NewGray(image.Rect(0, 0, r.cfg.PrintWidthPx, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	// Faces are minted per render call and never escape it, so parallel
	// renders cannot contend on glyph state.
	titleFace := r.fonts.Resolve(fontstore.RoleTitle)
	bodyFace := r.fonts.Resolve(fontstore.RoleBody)

	y := r.cfg.MarginY
	if timestamp != "" {
		w := MeasureWidth(bodyFace, timestamp)
		drawString(canvas, bodyFace, timestamp, r.cfg.PrintWidthPx-r.cfg.MarginX-w, y)
		y += r.cfg.LinePitch
	}

	for _, ln := range lines {
		if ln.Text != "" {
			face := bodyFace
			if ln.Role == RoleTitle {
				face = titleFace
			}
			drawString(canvas, face, ln.Text, r.cfg.MarginX, y)
		}
		y += r.cfg.LinePitch
	}

	return monochrome(canvas)
}

// RenderTicket runs layout and render in one step for a full ticket.
func (r *Renderer) RenderTicket(title string, bodyLines []string, timestamp string) *image.Paletted {
	lines, height := r.Layout(title, bodyLines, timestamp)
	return r.Render(lines, height, timestamp)
}

func drawString(dst draw.Image, face font.Face, s string, x, top int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// monochrome reduces a greyscale canvas to the two-color palette with
// Floyd-Steinberg error diffusion. A hard threshold would destroy
// anti-aliased glyph edges and any embedded imagery on two-level hardware.
func monochrome(src image.Image) *image.Paletted {
	d := dither.NewDitherer(monoPalette)
	d.Matrix = dither.FloydSteinberg
	return d.DitherPaletted(src)
}
