package thumb

import (
	"errors"
	"fmt"
	"syscall"
)

// error kinds, match with errors.Is
var (
	ErrEnvironment    = errors.New("shell environment init failed")
	ErrPathResolution = errors.New("path resolution failed")
	ErrCapability     = errors.New("item has no image capability")
	ErrAcquisition    = errors.New("thumbnail acquisition failed")
	ErrGeometryQuery  = errors.New("bitmap geometry query failed")
	ErrPixelTransfer  = errors.New("pixel transfer failed")

	ErrSessionBusy   = errors.New("session is busy")
	ErrSessionClosed = errors.New("session is closed")
	ErrUnsupported   = errors.New("shell thumbnails are not supported on this platform")
)

// CodeError carries the platform status of a failed step
type CodeError struct {
	Kind error
	Code uint32 // HRESULT or win32 error, 0 if unknown
	Text string
	Path string
	Err  error
}

// Error ...
func (e *CodeError) Error() string {
	s := e.Kind.Error()
	if e.Path != "" {
		s = fmt.Sprintf("%s %q", s, e.Path)
	}
	if e.Code != 0 {
		s = fmt.Sprintf("%s (0x%08X)", s, e.Code)
	}
	if e.Text != "" {
		s += ": " + e.Text
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the kind and the cause
func (e *CodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newCodeError(kind error, err error) *CodeError {
	return &CodeError{Kind: kind, Code: StatusCode(err), Err: err}
}

// StatusCode extracts the platform status from err, 0 if none
func StatusCode(err error) uint32 {
	var ce *CodeError
	if errors.As(err, &ce) && ce.Code != 0 {
		return ce.Code
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return 0
}
