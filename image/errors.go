package image

import (
	"errors"
)

var (
	ErrorFormat       = errors.New("Invalid or unsupported Image Format")
	ErrDecode         = errors.New("decode image failed")
	ErrEncode         = errors.New("encode image failed")
	ErrInvalidQuality = errors.New("quality must be in [0, 100]")
	ErrShortHeader    = errors.New("bitmap header too short")
)
