package image

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"

	_ "image/gif"

	_ "golang.org/x/image/bmp"
)

// DefaultFormat of re-encoded thumbnails
const DefaultFormat = "jpeg"

// WriteOption ...
type WriteOption struct {
	Format  string
	Quality Quality
}

func (wo WriteOption) String() string {
	return fmt.Sprintf("%s q%d", wo.Format, wo.Quality)
}

// ValidQuality reports q in [0, 100]
func ValidQuality(q int) bool {
	return q >= 0 && q <= 100
}

// Decode decodes any registered format, bitmaps included
func Decode(data []byte) (image.Image, string, error) {
	m, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return m, format, nil
}

// ReadAttr returns the attributes of an encoded stream without decoding pixels
func ReadAttr(data []byte) (*Attr, error) {
	c, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	ext := ExtByType(GuessType(data))
	if ext == "" {
		ext = "." + format
	}
	a := NewAttr(uint(c.Width), uint(c.Height), 0)
	a.Size = Size(len(data))
	a.Ext = ext
	a.Mime = mime.TypeByExtension(ext)
	return a, nil
}

// SaveTo encodes m with opt into w and returns the written length
func SaveTo(w io.Writer, m image.Image, opt WriteOption) (n int, err error) {
	cw := NewCountWriter(w)
	switch Ext2Format(opt.Format) {
	case "", "jpeg":
		err = jpeg.Encode(cw, m, &jpeg.Options{Quality: int(opt.Quality)})
	case "png":
		err = png.Encode(cw, m)
	case "webp":
		err = encodeWebp(cw, m, opt.Quality)
	default:
		return 0, fmt.Errorf("%w: unsupported format %q", ErrEncode, opt.Format)
	}
	if err != nil {
		return cw.Len(), fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return cw.Len(), nil
}

// Reencode decodes a serialized bitmap (or any registered format) and encodes it with opt
func Reencode(data []byte, opt WriteOption) ([]byte, *Attr, error) {
	if !ValidQuality(int(opt.Quality)) {
		return nil, nil, ErrInvalidQuality
	}
	m, format, err := Decode(data)
	if err != nil {
		logger().Infow("reencode decode fail", "size", len(data), "err", err)
		return nil, nil, err
	}
	if opt.Format == "" {
		opt.Format = DefaultFormat
	}

	var buf bytes.Buffer
	n, err := SaveTo(&buf, m, opt)
	if err != nil {
		logger().Infow("reencode fail", "from", format, "opt", opt, "err", err)
		return nil, nil, err
	}
	rec := m.Bounds()
	a := NewAttr(uint(rec.Dx()), uint(rec.Dy()), uint8(opt.Quality))
	a.Size = Size(n)
	a.Ext = "." + Ext2Format(opt.Format)
	if a.Ext == ".jpeg" {
		a.Ext = ".jpg"
	}
	a.Mime = mime.TypeByExtension(a.Ext)
	logger().Debugw("reencoded", "from", format, "attr", a)
	return buf.Bytes(), a, nil
}
