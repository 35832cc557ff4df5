// Package thumb extracts thumbnails from the shell thumbnail service as bitmaps.
package thumb

import (
	cimg "github.com/go-imsto/thumbcache/image"
)

// Bitmap returns a header-embedded 32 bpp bitmap of path no larger than size
func (s *Session) Bitmap(path string, size Size) ([]byte, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	h, err := s.acquire(path, size)
	if err != nil {
		return nil, err
	}
	data, g, err := materialize(s.p, h, true, s.opt.nativeDepth, size)
	if err != nil {
		logger().Infow("materialize fail", "path", path, "err", err)
		return nil, err
	}
	logger().Debugw("bitmap ready", "path", path, "geometry", g, "bytes", len(data))
	return data, nil
}

// Compressed returns the thumbnail re-encoded in the session format at quality
func (s *Session) Compressed(path string, size Size, quality int) ([]byte, error) {
	if !cimg.ValidQuality(quality) {
		return nil, cimg.ErrInvalidQuality
	}
	data, err := s.Bitmap(path, size)
	if err != nil {
		return nil, err
	}
	out, attr, err := cimg.Reencode(data, cimg.WriteOption{Format: s.opt.format, Quality: cimg.Quality(quality)})
	if err != nil {
		return nil, err
	}
	logger().Debugw("compressed", "path", path, "attr", attr)
	return out, nil
}

// GetBitmap runs the whole pipeline in a session of its own
func GetBitmap(path string, width, height int, opts ...Option) ([]byte, error) {
	s, err := Open(opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Bitmap(path, Size{Width: width, Height: height})
}

// GetCompressed is GetBitmap followed by a re-encode at quality
func GetCompressed(path string, width, height, quality int, opts ...Option) ([]byte, error) {
	s, err := Open(opts...)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Compressed(path, Size{Width: width, Height: height}, quality)
}
