package ticket

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// PrepareImage converts an uploaded image for printing: greyscale, scaled to
// the print head width keeping the aspect ratio, then dithered to 1-bit. The
// text pipeline is bypassed entirely for image uploads.
func (r *Renderer) PrepareImage(src image.Image) *image.Paletted {
	b := src.Bounds()
	dstW := r.cfg.PrintWidthPx
	dstH := b.Dy()
	if b.Dx() != dstW {
		dstH = int(math.Round(float64(b.Dy()) * float64(dstW) / float64(b.Dx())))
		if dstH < 1 {
			dstH = 1
		}
	}

	gray := image.NewGray(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(gray, gray.Bounds(), src, b, xdraw.Src, nil)
	return monochrome(gray)
}
