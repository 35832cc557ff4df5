package image

import (
	zlog "github.com/go-imsto/thumbcache/log"
)

func logger() zlog.Logger {
	return zlog.Get()
}
