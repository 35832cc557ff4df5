package thumb

import (
	"strings"
)

// Acquire asks the shell for a thumbnail of path no larger than size.
// The returned bitmap is owned by the caller and released by Materialize,
// which also scales it back inside size when the shell returned a bigger one.
func (s *Session) Acquire(path string, size Size) (Handle, error) {
	if err := s.enter(); err != nil {
		return 0, err
	}
	defer s.leave()
	h, err := s.acquire(path, size)
	if err != nil {
		return 0, err
	}
	s.bounds[h] = size
	return h, nil
}

func (s *Session) acquire(path string, size Size) (Handle, error) {
	if err := size.Validate(); err != nil {
		return 0, err
	}
	if path == "" || strings.IndexByte(path, 0) >= 0 {
		return 0, &CodeError{Kind: ErrPathResolution, Path: path, Text: "invalid path syntax"}
	}

	item, err := s.p.ParseItem(path)
	if err != nil {
		logger().Infow("parse item fail", "path", path, "err", err)
		ce := newCodeError(ErrPathResolution, err)
		ce.Path = path
		return 0, ce
	}
	defer s.p.Release(item)

	factory, err := s.p.ImageFactory(item)
	if err != nil {
		logger().Infow("query image factory fail", "path", path, "err", err)
		ce := newCodeError(ErrCapability, err)
		ce.Path = path
		return 0, ce
	}
	defer s.p.Release(factory)

	flags := s.opt.flags()
	bm, err := s.p.GetImage(factory, size, flags)
	if err != nil {
		logger().Infow("get image fail", "path", path, "size", size, "flags", flags, "err", err)
		ce := newCodeError(ErrAcquisition, err)
		ce.Path = path
		return 0, ce
	}
	logger().Debugw("acquired", "path", path, "size", size, "flags", flags)
	return bm, nil
}
