package cmd

import (
	cimg "github.com/go-imsto/thumbcache/image"
)

// outName returns out.<ext> for a format name
func outName(format string) string {
	switch f := cimg.Ext2Format(format); f {
	case "", "jpeg":
		return "out.jpg"
	default:
		return "out." + f
	}
}
