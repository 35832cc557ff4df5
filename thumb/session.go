package thumb

import (
	"runtime"
	"sync/atomic"

	zlog "github.com/go-imsto/thumbcache/log"
)

func logger() zlog.Logger {
	return zlog.Get()
}

// Session owns the shell environment of one goroutine, pinned to its OS thread.
// It is not shared: each concurrent request opens its own, and Close must run
// on the goroutine that called Open.
type Session struct {
	opt    options
	p      Platform
	busy   atomic.Bool
	closed atomic.Bool
	// requested size of every bitmap handed out by Acquire and not yet materialized
	bounds map[Handle]Size
}

// Open initializes the shell environment for the calling goroutine
func Open(opts ...Option) (*Session, error) {
	o := newOptions(opts...)
	runtime.LockOSThread()
	if err := o.platform.Initialize(); err != nil {
		runtime.UnlockOSThread()
		logger().Infow("shell init fail", "err", err)
		return nil, newCodeError(ErrEnvironment, err)
	}
	return &Session{opt: o, p: o.platform, bounds: map[Handle]Size{}}, nil
}

// Close tears the environment down once, later calls are no-ops
func (s *Session) Close() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrSessionBusy
	}
	defer s.busy.Store(false)
	if s.closed.Swap(true) {
		return nil
	}
	s.p.Uninitialize()
	runtime.UnlockOSThread()
	return nil
}

// enter marks the session in use, calls never overlap
func (s *Session) enter() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrSessionBusy
	}
	if s.closed.Load() {
		s.busy.Store(false)
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) leave() {
	s.busy.Store(false)
}
