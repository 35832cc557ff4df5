//go:build windows

package thumb

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	cimg "github.com/go-imsto/thumbcache/image"
)

var (
	modshell32 = windows.NewLazySystemDLL("shell32.dll")

	procSHCreateItemFromParsingName = modshell32.NewProc("SHCreateItemFromParsingName")
)

var (
	iidIShellItem = windows.GUID{
		Data1: 0x43826d1e, Data2: 0xe718, Data3: 0x42ee,
		Data4: [8]byte{0xbc, 0x55, 0xa1, 0xe2, 0x61, 0xc3, 0x7b, 0xfe},
	}
	iidIShellItemImageFactory = windows.GUID{
		Data1: 0xbcc18b79, Data2: 0xba16, Data3: 0x442f,
		Data4: [8]byte{0x80, 0xc4, 0x8a, 0x59, 0xc3, 0x0c, 0x46, 0x3b},
	}
)

const (
	sFalse   = syscall.Errno(1)
	ePointer = syscall.Errno(0x80004003)
)

type iunknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type imageFactoryVtbl struct {
	iunknownVtbl
	GetImage uintptr
}

// comObject is the memory layout of every COM interface pointer
type comObject struct {
	vtbl *iunknownVtbl
}

// BITMAPINFO with room for a full color table
type dibInfo struct {
	win.BITMAPINFO
	_ [256]uint32
}

// winPlatform keeps the interface pointers it handed out as opaque handles
type winPlatform struct {
	objs map[Handle]*comObject
}

func nativePlatform() Platform {
	return &winPlatform{objs: map[Handle]*comObject{}}
}

func (p *winPlatform) track(obj *comObject) Handle {
	h := Handle(uintptr(unsafe.Pointer(obj)))
	p.objs[h] = obj
	return h
}

func (p *winPlatform) object(h Handle) (*comObject, error) {
	obj, ok := p.objs[h]
	if !ok || obj == nil {
		return nil, ePointer
	}
	return obj, nil
}

func failed(hr uintptr) bool {
	return int32(hr) < 0
}

func hresult(hr uintptr) error {
	return syscall.Errno(uint32(hr))
}

// lastError keeps a real win32 error or falls back to def
func lastError(err error, def syscall.Errno) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return errno
	}
	return def
}

func (*winPlatform) Initialize() error {
	err := windows.CoInitializeEx(0, windows.COINIT_MULTITHREADED|windows.COINIT_DISABLE_OLE1DDE)
	if err != nil && err != sFalse {
		return err
	}
	return nil
}

func (*winPlatform) Uninitialize() {
	windows.CoUninitialize()
}

func (p *winPlatform) ParseItem(path string) (Handle, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	var item *comObject
	hr, _, _ := procSHCreateItemFromParsingName.Call(
		uintptr(unsafe.Pointer(name)),
		0,
		uintptr(unsafe.Pointer(&iidIShellItem)),
		uintptr(unsafe.Pointer(&item)))
	if failed(hr) {
		return 0, hresult(hr)
	}
	return p.track(item), nil
}

func (p *winPlatform) ImageFactory(item Handle) (Handle, error) {
	obj, err := p.object(item)
	if err != nil {
		return 0, err
	}
	var factory *comObject
	hr, _, _ := syscall.SyscallN(obj.vtbl.QueryInterface,
		uintptr(unsafe.Pointer(obj)),
		uintptr(unsafe.Pointer(&iidIShellItemImageFactory)),
		uintptr(unsafe.Pointer(&factory)))
	if failed(hr) {
		return 0, hresult(hr)
	}
	return p.track(factory), nil
}

func (p *winPlatform) GetImage(factory Handle, size Size, flags Flags) (Handle, error) {
	obj, err := p.object(factory)
	if err != nil {
		return 0, err
	}
	vt := (*imageFactoryVtbl)(unsafe.Pointer(obj.vtbl))
	var bm win.HBITMAP
	args := []uintptr{uintptr(unsafe.Pointer(obj))}
	// SIZE is passed by value
	if unsafe.Sizeof(uintptr(0)) == 8 {
		args = append(args, uintptr(uint32(size.Width))|uintptr(uint32(size.Height))<<32)
	} else {
		args = append(args, uintptr(size.Width), uintptr(size.Height))
	}
	args = append(args, uintptr(flags), uintptr(unsafe.Pointer(&bm)))
	hr, _, _ := syscall.SyscallN(vt.GetImage, args...)
	if failed(hr) {
		return 0, hresult(hr)
	}
	return Handle(bm), nil
}

func (p *winPlatform) Release(h Handle) {
	obj, ok := p.objs[h]
	if !ok {
		return
	}
	delete(p.objs, h)
	syscall.SyscallN(obj.vtbl.Release, uintptr(unsafe.Pointer(obj)))
}

func (*winPlatform) Geometry(bm Handle) (Geometry, error) {
	var b win.BITMAP
	if win.GetObject(win.HGDIOBJ(bm), unsafe.Sizeof(b), unsafe.Pointer(&b)) == 0 {
		return Geometry{}, lastError(windows.GetLastError(), windows.ERROR_INVALID_HANDLE)
	}
	return Geometry{
		Width:        int(b.BmWidth),
		Height:       int(b.BmHeight),
		Stride:       int(b.BmWidthBytes),
		BitsPerPixel: int(b.BmBitsPixel),
	}, nil
}

func (*winPlatform) CreateCompatibleDC() (Handle, error) {
	dc := win.CreateCompatibleDC(0)
	if dc == 0 {
		return 0, lastError(windows.GetLastError(), windows.ERROR_INVALID_HANDLE)
	}
	return Handle(dc), nil
}

func (*winPlatform) DeleteDC(dc Handle) error {
	if !win.DeleteDC(win.HDC(dc)) {
		return lastError(windows.GetLastError(), windows.ERROR_INVALID_HANDLE)
	}
	return nil
}

func (*winPlatform) DeleteObject(bm Handle) error {
	if !win.DeleteObject(win.HGDIOBJ(bm)) {
		return lastError(windows.GetLastError(), windows.ERROR_INVALID_HANDLE)
	}
	return nil
}

func (*winPlatform) GetDIBits(dc, bm Handle, lines int, bits []byte, ih *cimg.InfoHeader) (int, error) {
	if len(bits) == 0 {
		return 0, windows.ERROR_INVALID_PARAMETER
	}
	var info dibInfo
	info.BmiHeader = toInfoHeader(ih)
	n := win.GetDIBits(win.HDC(dc), win.HBITMAP(bm), 0, uint32(lines), &bits[0], &info.BITMAPINFO, win.DIB_RGB_COLORS)
	if n <= 0 {
		return 0, lastError(windows.GetLastError(), windows.ERROR_INVALID_PARAMETER)
	}
	ih.SizeImage = info.BmiHeader.BiSizeImage
	return int(n), nil
}

func toInfoHeader(ih *cimg.InfoHeader) win.BITMAPINFOHEADER {
	return win.BITMAPINFOHEADER{
		BiSize:          ih.Size,
		BiWidth:         ih.Width,
		BiHeight:        ih.Height,
		BiPlanes:        ih.Planes,
		BiBitCount:      ih.BitCount,
		BiCompression:   ih.Compression,
		BiSizeImage:     ih.SizeImage,
		BiXPelsPerMeter: ih.XPelsPerMeter,
		BiYPelsPerMeter: ih.YPelsPerMeter,
		BiClrUsed:       ih.ClrUsed,
		BiClrImportant:  ih.ClrImportant,
	}
}
