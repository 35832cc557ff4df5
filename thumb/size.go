package thumb

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize 表示无效的尺寸格式
var ErrInvalidSize = errors.New("invalid thumbnail size")

// Size is the upper bound of a requested thumbnail
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// preset sizes
var (
	S16   = Size{16, 16}
	S32   = Size{32, 32}
	S48   = Size{48, 48}
	S96   = Size{96, 96}
	S256  = Size{256, 256}
	S768  = Size{768, 768}
	S1280 = Size{1280, 1280}
	S1920 = Size{1920, 1920}
	S2560 = Size{2560, 2560}
)

const maxDimension = 2560

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsZero ...
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Validate checks both dimensions are positive
func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSize, s)
	}
	if s.Width > maxDimension || s.Height > maxDimension {
		return fmt.Errorf("%w: %s exceeds %d", ErrInvalidSize, s, maxDimension)
	}
	return nil
}

// Contains reports w x h fits inside s
func (s Size) Contains(w, h int) bool {
	return w <= s.Width && h <= s.Height
}

// ParseSize parses "96" or "120x90"
func ParseSize(str string) (Size, error) {
	var s Size
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(str)), "x")
	w, err := strconv.Atoi(ws)
	if err != nil {
		return s, fmt.Errorf("%w: %q", ErrInvalidSize, str)
	}
	h := w
	if ok {
		if h, err = strconv.Atoi(hs); err != nil {
			return s, fmt.Errorf("%w: %q", ErrInvalidSize, str)
		}
	}
	s = Size{Width: w, Height: h}
	return s, s.Validate()
}
