package thumb

import (
	"strings"
	"syscall"

	cimg "github.com/go-imsto/thumbcache/image"
)

// status codes used by the fake
const (
	codeFileNotFound = syscall.Errno(0x80070002)
	codeNoInterface  = syscall.Errno(0x80004002)
	codeFail         = syscall.Errno(0x80004005)
	codeInvalidParam = syscall.Errno(87)
)

// fakePlatform tracks every foreign resource it hands out
type fakePlatform struct {
	next Handle
	live map[Handle]string
	geom map[Handle]Geometry

	inits, uninits int
	initErr        error

	parsed       int
	transfers    int
	dcs          int
	badReleases  int
	lastFlags    Flags
	lastSize     Size
	source       Size // native size of every file
	sourceBPP    int
	noImage      bool
	getImageErr  error
	geometryErr  error
	failTransfer func(call int) bool
}

func newFake() *fakePlatform {
	return &fakePlatform{
		live:      map[Handle]string{},
		geom:      map[Handle]Geometry{},
		source:    Size{400, 300},
		sourceBPP: 24,
	}
}

func (f *fakePlatform) alloc(kind string) Handle {
	f.next++
	h := f.next + 0x1000
	f.live[h] = kind
	return h
}

func (f *fakePlatform) free(h Handle, kind string) bool {
	if f.live[h] != kind {
		f.badReleases++
		return false
	}
	delete(f.live, h)
	return true
}

func (f *fakePlatform) leaks() int {
	return len(f.live)
}

func (f *fakePlatform) Initialize() error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits++
	return nil
}

func (f *fakePlatform) Uninitialize() {
	f.uninits++
}

func (f *fakePlatform) ParseItem(path string) (Handle, error) {
	f.parsed++
	if strings.Contains(path, "missing") {
		return 0, codeFileNotFound
	}
	return f.alloc("item"), nil
}

func (f *fakePlatform) ImageFactory(item Handle) (Handle, error) {
	if f.live[item] != "item" {
		return 0, codeFail
	}
	if f.noImage {
		return 0, codeNoInterface
	}
	return f.alloc("factory"), nil
}

func (f *fakePlatform) GetImage(factory Handle, size Size, flags Flags) (Handle, error) {
	f.lastFlags, f.lastSize = flags, size
	if f.live[factory] != "factory" {
		return 0, codeFail
	}
	if f.getImageErr != nil {
		return 0, f.getImageErr
	}
	w, h := f.source.Width, f.source.Height
	if flags&FlagBiggerSizeOK == 0 && !size.Contains(w, h) {
		if w*size.Height >= h*size.Width {
			w, h = size.Width, h*size.Width/w
		} else {
			w, h = w*size.Height/h, size.Height
		}
	}
	bm := f.alloc("bitmap")
	f.geom[bm] = Geometry{Width: w, Height: h, Stride: cimg.Stride(w, f.sourceBPP), BitsPerPixel: f.sourceBPP}
	return bm, nil
}

func (f *fakePlatform) Release(obj Handle) {
	kind := f.live[obj]
	if kind != "item" && kind != "factory" {
		f.badReleases++
		return
	}
	f.free(obj, kind)
}

func (f *fakePlatform) Geometry(bm Handle) (Geometry, error) {
	if f.live[bm] != "bitmap" {
		return Geometry{}, codeFail
	}
	if f.geometryErr != nil {
		return Geometry{}, f.geometryErr
	}
	return f.geom[bm], nil
}

func (f *fakePlatform) CreateCompatibleDC() (Handle, error) {
	f.dcs++
	return f.alloc("dc"), nil
}

func (f *fakePlatform) DeleteDC(dc Handle) error {
	if !f.free(dc, "dc") {
		return codeInvalidParam
	}
	return nil
}

func (f *fakePlatform) GetDIBits(dc, bm Handle, lines int, bits []byte, ih *cimg.InfoHeader) (int, error) {
	if f.live[dc] != "dc" || f.live[bm] != "bitmap" {
		return 0, codeInvalidParam
	}
	f.transfers++
	if f.failTransfer != nil && f.failTransfer(f.transfers) {
		return 0, codeInvalidParam
	}
	if ih.Height >= 0 || len(bits) != ih.Stride()*lines {
		return 0, codeInvalidParam
	}
	for i := range bits {
		bits[i] = byte((i * 31) ^ (i >> 5))
	}
	return lines, nil
}

func (f *fakePlatform) DeleteObject(bm Handle) error {
	if !f.free(bm, "bitmap") {
		return codeInvalidParam
	}
	delete(f.geom, bm)
	return nil
}
