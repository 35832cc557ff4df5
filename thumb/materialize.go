package thumb

import (
	"fmt"

	cimg "github.com/go-imsto/thumbcache/image"
)

const outputDepth = 32

// bitmap guards an HBITMAP, release runs once
type bitmap struct {
	gdi      GDI
	h        Handle
	released bool
}

func (b *bitmap) release() {
	if b.released {
		return
	}
	b.released = true
	if err := b.gdi.DeleteObject(b.h); err != nil {
		logger().Warnw("delete bitmap fail", "err", err)
	}
}

// Materialize copies the pixels of h as top-down rows and releases h.
// With embedHeaders the result is a standalone bitmap file, otherwise raw rows.
// The returned Geometry describes the output pixels, not the source.
// A handle from Acquire is fitted inside the size it was requested at.
func (s *Session) Materialize(h Handle, embedHeaders bool) ([]byte, Geometry, error) {
	if err := s.enter(); err != nil {
		return nil, Geometry{}, err
	}
	defer s.leave()
	bounds := s.bounds[h]
	delete(s.bounds, h)
	return materialize(s.p, h, embedHeaders, s.opt.nativeDepth, bounds)
}

// materialize fits the pixels inside bounds unless bounds is zero
func materialize(gdi GDI, h Handle, embedHeaders, nativeDepth bool, bounds Size) ([]byte, Geometry, error) {
	bm := &bitmap{gdi: gdi, h: h}
	defer bm.release()

	g, err := gdi.Geometry(h)
	if err != nil {
		return nil, g, newCodeError(ErrGeometryQuery, err)
	}
	if g.Width <= 0 || g.Height == 0 {
		return nil, g, &CodeError{Kind: ErrGeometryQuery, Text: fmt.Sprintf("empty bitmap %dx%d", g.Width, g.Height)}
	}

	needFit := !bounds.IsZero() && !bounds.Contains(g.Width, g.Rows())
	bpp := outputDepth
	if nativeDepth && !needFit {
		switch g.BitsPerPixel {
		case 16, 24, 32:
			bpp = g.BitsPerPixel
		}
	}

	ih := cimg.NewInfoHeader(g.Width, g.Rows(), uint16(bpp))
	rows := ih.Rows()
	bits := make([]byte, ih.Stride()*rows)

	n, err := transfer(gdi, h, rows, bits, &ih)
	bm.release()
	if err != nil {
		return nil, g, newCodeError(ErrPixelTransfer, err)
	}
	if n != rows {
		return nil, g, &CodeError{Kind: ErrPixelTransfer, Text: fmt.Sprintf("%d of %d rows copied", n, rows)}
	}

	out := Geometry{Width: g.Width, Height: rows, Stride: ih.Stride(), BitsPerPixel: bpp}
	if needFit {
		var fw, fh int
		bits, fw, fh = fitPixels(bits, g.Width, rows, bounds)
		logger().Debugw("fitted", "from", Size{g.Width, rows}, "to", Size{fw, fh})
		out = Geometry{Width: fw, Height: fh, Stride: 4 * fw, BitsPerPixel: outputDepth}
	}
	if !embedHeaders {
		return bits, out, nil
	}
	return cimg.Serialize(cimg.NewInfoHeader(out.Width, out.Height, uint16(out.BitsPerPixel)), bits), out, nil
}

// transfer copies rows through a temporary compatible rendering context
func transfer(gdi GDI, h Handle, rows int, bits []byte, ih *cimg.InfoHeader) (int, error) {
	dc, err := gdi.CreateCompatibleDC()
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := gdi.DeleteDC(dc); err != nil {
			logger().Warnw("delete dc fail", "err", err)
		}
	}()

	n, err := gdi.GetDIBits(dc, h, rows, bits, ih)
	if n == 0 && err == nil {
		err = fmt.Errorf("no rows copied")
	}
	if n == 0 {
		return 0, err
	}
	return n, nil
}
