package cmd

import (
	"fmt"
	"os"

	cimg "github.com/go-imsto/thumbcache/image"
)

var cmdInfo = &Command{
	UsageLine: "info file",
	Short:     "print the headers of a bitmap or the attributes of an image",
	Long: `
Print the file and info headers of a bitmap written by bmp,
or width, height and size of any other supported image.
`,
}

func init() {
	cmdInfo.Run = runInfo
}

func runInfo(args []string) bool {
	if len(args) < 1 {
		return false
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fatal("read", err, nil)
		return true
	}

	if cimg.GuessType(data) == cimg.TypeBMP {
		fh, ih, err := cimg.ParseHeaders(data)
		if err != nil {
			fatal("parse", err, nil)
			return true
		}
		fmt.Printf("size: \t%d\noffset: \t%d\n", fh.FileSize, fh.DataOffset)
		fmt.Printf("width: \t%d\nheight: \t%d\ntop-down: \t%v\nbpp: \t%d\ncompression: \t%d\n",
			ih.Width, ih.Height, ih.TopDown(), ih.BitCount, ih.Compression)
	}

	a, err := cimg.ReadAttr(data)
	if err != nil {
		fatal("attr", err, nil)
		return true
	}
	fmt.Printf("attr: \t%s\n", a)
	return true
}
