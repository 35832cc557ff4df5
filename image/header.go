package image

import (
	"encoding/binary"
	"fmt"
)

// fixed sizes of the bitmap headers
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeadersSize    = FileHeaderSize + InfoHeaderSize

	BiRGB = 0 // uncompressed
)

// FileHeader is BITMAPFILEHEADER
type FileHeader struct {
	FileSize   uint32
	Reserved   uint32
	DataOffset uint32
}

// InfoHeader is BITMAPINFOHEADER, negative Height means top-down rows
type InfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// NewInfoHeader returns an uncompressed top-down header for w x |h| at bpp bits per pixel
func NewInfoHeader(w, h int, bpp uint16) InfoHeader {
	if h > 0 {
		h = -h
	}
	return InfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(w),
		Height:      int32(h),
		Planes:      1,
		BitCount:    bpp,
		Compression: BiRGB,
	}
}

// Stride returns the DWORD aligned row length in bytes
func (ih InfoHeader) Stride() int {
	return Stride(int(ih.Width), int(ih.BitCount))
}

// Rows returns the absolute pixel height
func (ih InfoHeader) Rows() int {
	if ih.Height < 0 {
		return int(-ih.Height)
	}
	return int(ih.Height)
}

// TopDown ...
func (ih InfoHeader) TopDown() bool {
	return ih.Height < 0
}

// Stride of a row of w pixels at bpp, rows are padded to 4 bytes
func Stride(w, bpp int) int {
	if w < 0 {
		w = -w
	}
	return ((w*bpp + 31) / 32) * 4
}

// AppendFileHeader packs fh after "BM" into b
func AppendFileHeader(b []byte, fh FileHeader) []byte {
	b = append(b, SigBMP...)
	b = binary.LittleEndian.AppendUint32(b, fh.FileSize)
	b = binary.LittleEndian.AppendUint32(b, fh.Reserved)
	b = binary.LittleEndian.AppendUint32(b, fh.DataOffset)
	return b
}

// AppendInfoHeader packs ih field by field into b
func AppendInfoHeader(b []byte, ih InfoHeader) []byte {
	le := binary.LittleEndian
	b = le.AppendUint32(b, ih.Size)
	b = le.AppendUint32(b, uint32(ih.Width))
	b = le.AppendUint32(b, uint32(ih.Height))
	b = le.AppendUint16(b, ih.Planes)
	b = le.AppendUint16(b, ih.BitCount)
	b = le.AppendUint32(b, ih.Compression)
	b = le.AppendUint32(b, ih.SizeImage)
	b = le.AppendUint32(b, uint32(ih.XPelsPerMeter))
	b = le.AppendUint32(b, uint32(ih.YPelsPerMeter))
	b = le.AppendUint32(b, ih.ClrUsed)
	b = le.AppendUint32(b, ih.ClrImportant)
	return b
}

// Serialize returns FileHeader ++ InfoHeader ++ pixels as a standalone bitmap file
func Serialize(ih InfoHeader, pixels []byte) []byte {
	total := HeadersSize + len(pixels)
	b := make([]byte, 0, total)
	b = AppendFileHeader(b, FileHeader{
		FileSize:   uint32(total),
		DataOffset: HeadersSize,
	})
	b = AppendInfoHeader(b, ih)
	return append(b, pixels...)
}

// ParseHeaders reads both headers from the start of a bitmap stream
func ParseHeaders(data []byte) (fh FileHeader, ih InfoHeader, err error) {
	if len(data) < HeadersSize {
		err = ErrShortHeader
		return
	}
	if string(data[:2]) != SigBMP {
		err = fmt.Errorf("%w: bad magic %q", ErrorFormat, data[:2])
		return
	}
	le := binary.LittleEndian
	fh.FileSize = le.Uint32(data[2:])
	fh.Reserved = le.Uint32(data[6:])
	fh.DataOffset = le.Uint32(data[10:])

	p := data[FileHeaderSize:]
	ih.Size = le.Uint32(p[0:])
	ih.Width = int32(le.Uint32(p[4:]))
	ih.Height = int32(le.Uint32(p[8:]))
	ih.Planes = le.Uint16(p[12:])
	ih.BitCount = le.Uint16(p[14:])
	ih.Compression = le.Uint32(p[16:])
	ih.SizeImage = le.Uint32(p[20:])
	ih.XPelsPerMeter = int32(le.Uint32(p[24:]))
	ih.YPelsPerMeter = int32(le.Uint32(p[28:]))
	ih.ClrUsed = le.Uint32(p[32:])
	ih.ClrImportant = le.Uint32(p[36:])
	return
}
