package thumb

import (
	cimg "github.com/go-imsto/thumbcache/image"
)

// Handle is an opaque foreign resource: a COM interface pointer, HBITMAP or HDC
type Handle uintptr

// Flags of a shell image request (SIIGBF)
type Flags uint32

// consts Flags
const (
	FlagResizeToFit   Flags = 0x00
	FlagBiggerSizeOK  Flags = 0x01
	FlagMemoryOnly    Flags = 0x02
	FlagIconOnly      Flags = 0x04
	FlagThumbnailOnly Flags = 0x08
	FlagInCacheOnly   Flags = 0x10
)

// Geometry of a device-dependent bitmap
type Geometry struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	Stride       int `json:"stride"`
	BitsPerPixel int `json:"bpp"`
}

// Rows returns the absolute height
func (g Geometry) Rows() int {
	if g.Height < 0 {
		return -g.Height
	}
	return g.Height
}

// Shell is the object model side of the platform
type Shell interface {
	// Initialize prepares the calling thread, paired with Uninitialize
	Initialize() error
	Uninitialize()
	// ParseItem resolves a path into a shell item
	ParseItem(path string) (Handle, error)
	// ImageFactory queries the image capability of an item
	ImageFactory(item Handle) (Handle, error)
	// GetImage returns a bitmap no larger than size
	GetImage(factory Handle, size Size, flags Flags) (Handle, error)
	// Release drops a reference taken by ParseItem or ImageFactory
	Release(obj Handle)
}

// GDI is the bitmap side of the platform
type GDI interface {
	Geometry(bm Handle) (Geometry, error)
	CreateCompatibleDC() (Handle, error)
	DeleteDC(dc Handle) error
	// GetDIBits copies lines rows in the format of ih into bits, returning rows copied
	GetDIBits(dc, bm Handle, lines int, bits []byte, ih *cimg.InfoHeader) (int, error)
	DeleteObject(bm Handle) error
}

// Platform ...
type Platform interface {
	Shell
	GDI
}
