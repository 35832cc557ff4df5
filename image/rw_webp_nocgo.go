//go:build !cgo

package image

import (
	"errors"
	"image"
	"io"
)

var errWebpNoCgo = errors.New("webp encoder needs cgo")

func encodeWebp(w io.Writer, m image.Image, q Quality) error {
	return errWebpNoCgo
}
