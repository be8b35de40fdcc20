package ticket

import (
	"image"
	"image/color"
	"testing"
)

func TestPrepareImageScalesToPrintWidth(t *testing.T) {
	r := testRenderer(t)

	tests := []struct {
		name       string
		srcW, srcH int
		wantW      int
		wantH      int
	}{
		{name: "downscale wide image", srcW: 1200, srcH: 400, wantW: 576, wantH: 192},
		{name: "upscale narrow image", srcW: 288, srcH: 100, wantW: 576, wantH: 200},
		{name: "exact width untouched", srcW: 576, srcH: 333, wantW: 576, wantH: 333},
		{name: "rounds down", srcW: 1000, srcH: 433, wantW: 576, wantH: 249}, // 433*0.576 = 249.408
		{name: "rounds up", srcW: 1000, srcH: 435, wantW: 576, wantH: 251},   // 435*0.576 = 250.56
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewGray(image.Rect(0, 0, tc.srcW, tc.srcH))
			got := r.PrepareImage(src)
			if got.Bounds().Dx() != tc.wantW || got.Bounds().Dy() != tc.wantH {
				t.Fatalf("PrepareImage(%dx%d) = %dx%d, want %dx%d",
					tc.srcW, tc.srcH, got.Bounds().Dx(), got.Bounds().Dy(), tc.wantW, tc.wantH)
			}
			if len(got.Palette) > 2 {
				t.Fatalf("palette has %d colors, want at most 2", len(got.Palette))
			}
		})
	}
}

func TestPrepareImageKeepsContrast(t *testing.T) {
	r := testRenderer(t)

	// Left half black, right half white.
	src := image.NewGray(image.Rect(0, 0, 1152, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 576; x++ {
			src.SetGray(x, y, color.Gray{Y: 0})
		}
		for x := 576; x < 1152; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	got := r.PrepareImage(src)
	if got.Bounds().Dx() != 576 || got.Bounds().Dy() != 50 {
		t.Fatalf("unexpected output size %v", got.Bounds())
	}

	// Sample away from the seam.
	rr, _, _, _ := got.At(10, 25).RGBA()
	if rr != 0 {
		t.Fatalf("left half should be black, got %v", got.At(10, 25))
	}
	rr, _, _, _ = got.At(565, 25).RGBA()
	if rr != 0xffff {
		t.Fatalf("right half should be white, got %v", got.At(565, 25))
	}
}
