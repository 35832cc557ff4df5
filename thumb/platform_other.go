//go:build !windows

package thumb

import (
	cimg "github.com/go-imsto/thumbcache/image"
)

type unsupported struct{}

func nativePlatform() Platform {
	return unsupported{}
}

func (unsupported) Initialize() error { return ErrUnsupported }
func (unsupported) Uninitialize() {}
func (unsupported) ParseItem(string) (Handle, error) { return 0, ErrUnsupported }
func (unsupported) ImageFactory(Handle) (Handle, error) { return 0, ErrUnsupported }
func (unsupported) GetImage(Handle, Size, Flags) (Handle, error) { return 0, ErrUnsupported }
func (unsupported) Release(Handle) {}
func (unsupported) Geometry(Handle) (Geometry, error) { return Geometry{}, ErrUnsupported }
func (unsupported) CreateCompatibleDC() (Handle, error) { return 0, ErrUnsupported }
func (unsupported) DeleteDC(Handle) error { return ErrUnsupported }
func (unsupported) DeleteObject(Handle) error { return ErrUnsupported }

func (unsupported) GetDIBits(Handle, Handle, int, []byte, *cimg.InfoHeader) (int, error) {
	return 0, ErrUnsupported
}
