package thumb

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// fitPixels scales top-down BGRA rows of w x h down into bounds, keeping the aspect ratio
func fitPixels(bits []byte, w, h int, bounds Size) ([]byte, int, int) {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	opaque := true
	for i := 3; i < len(bits); i += 4 {
		if bits[i] != 0 {
			opaque = false
			break
		}
	}
	for i := 0; i+3 < len(bits) && i+3 < len(m.Pix); i += 4 {
		m.Pix[i+0] = bits[i+2]
		m.Pix[i+1] = bits[i+1]
		m.Pix[i+2] = bits[i+0]
		if opaque {
			m.Pix[i+3] = 0xff
		} else {
			m.Pix[i+3] = bits[i+3]
		}
	}

	t := resize.Thumbnail(uint(bounds.Width), uint(bounds.Height), m, resize.Bilinear)
	tb := t.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, tb.Dx(), tb.Dy()))
	draw.Draw(dst, dst.Bounds(), t, tb.Min, draw.Src)

	out := make([]byte, len(dst.Pix))
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		out[i+0] = dst.Pix[i+2]
		out[i+1] = dst.Pix[i+1]
		out[i+2] = dst.Pix[i+0]
		if opaque {
			out[i+3] = 0
		} else {
			out[i+3] = dst.Pix[i+3]
		}
	}
	return out, tb.Dx(), tb.Dy()
}
