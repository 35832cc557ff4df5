package cmd

import (
	"flag"

	"github.com/go-imsto/thumbcache/config"
	"github.com/go-imsto/thumbcache/thumb"
	"github.com/go-imsto/thumbcache/utils"
)

var cmdBmp = &Command{
	UsageLine: "bmp [-o out.bmp] [-s 96|WxH] [-fallback] [-native] [-bigger] file",
	Short:     "extract a shell thumbnail as bitmap",
	Long: `
Ask the shell thumbnail service for a thumbnail of file, no larger than the size,
and write it as a 32 bpp top-down bitmap.
`,
}

var (
	bOut      string
	bSize     string
	bFallback bool
	bNative   bool
	bBigger   bool
)

func init() {
	cmdBmp.Run = runBmp
	addPipelineFlags(&cmdBmp.Flag, &bSize, &bFallback, &bNative, &bBigger)
	cmdBmp.Flag.StringVar(&bOut, "o", config.Current.Output, "output file")
}

func addPipelineFlags(fs *flag.FlagSet, size *string, fallback, native, bigger *bool) {
	cs := config.Current
	fs.StringVar(size, "s", cs.Size, "max size, 96 or WxH")
	fs.BoolVar(fallback, "fallback", cs.Fallback, "allow full render when there is no thumbnail")
	fs.BoolVar(native, "native", cs.NativeDepth, "keep source bit depth (16, 24 or 32)")
	fs.BoolVar(bigger, "bigger", cs.BiggerOK, "accept a bigger cached thumbnail and scale it down")
}

func pipelineOptions(fallback, native, bigger bool) []thumb.Option {
	return []thumb.Option{
		thumb.WithFallback(fallback),
		thumb.WithNativeDepth(native),
		thumb.WithBiggerSizeOK(bigger),
	}
}

func runBmp(args []string) bool {
	if len(args) < 1 {
		return false
	}
	name := args[0]
	size, err := thumb.ParseSize(bSize)
	if err != nil {
		errorf("%s", err)
		return false
	}

	data, err := thumb.GetBitmap(name, size.Width, size.Height, pipelineOptions(bFallback, bNative, bBigger)...)
	if err != nil {
		fatal("bmp", err, map[string]string{"size": size.String()})
		return true
	}
	if err = utils.SaveFile(bOut, data); err != nil {
		fatal("save", err, nil)
		return true
	}
	logger().Infow("saved", "file", name, "out", bOut, "bytes", len(data))
	return true
}
