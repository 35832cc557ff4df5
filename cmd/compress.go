package cmd

import (
	"github.com/go-imsto/thumbcache/config"
	"github.com/go-imsto/thumbcache/thumb"
	"github.com/go-imsto/thumbcache/utils"
)

var cmdCompress = &Command{
	UsageLine: "compress [-o out.jpg] [-s 96|WxH] [-q 85] [-f jpeg|png|webp] file",
	Short:     "extract a shell thumbnail and re-encode it",
	Long: `
Extract a thumbnail like bmp, then re-encode it as jpeg, png or webp at the quality.
`,
}

var (
	cOut      string
	cSize     string
	cQuality  int
	cFormat   string
	cFallback bool
	cNative   bool
	cBigger   bool
)

func init() {
	cmdCompress.Run = runCompress
	cs := config.Current
	addPipelineFlags(&cmdCompress.Flag, &cSize, &cFallback, &cNative, &cBigger)
	cmdCompress.Flag.StringVar(&cOut, "o", "", "output file, default out.<ext>")
	cmdCompress.Flag.IntVar(&cQuality, "q", cs.Quality, "quality 0-100")
	cmdCompress.Flag.StringVar(&cFormat, "f", cs.Format, "format: jpeg, png or webp")
}

func runCompress(args []string) bool {
	if len(args) < 1 {
		return false
	}
	name := args[0]
	size, err := thumb.ParseSize(cSize)
	if err != nil {
		errorf("%s", err)
		return false
	}
	out := cOut
	if out == "" {
		out = outName(cFormat)
	}

	opts := append(pipelineOptions(cFallback, cNative, cBigger), thumb.WithFormat(cFormat))
	data, err := thumb.GetCompressed(name, size.Width, size.Height, cQuality, opts...)
	if err != nil {
		fatal("compress", err, map[string]string{"size": size.String(), "format": cFormat})
		return true
	}
	if err = utils.SaveFile(out, data); err != nil {
		fatal("save", err, nil)
		return true
	}
	logger().Infow("saved", "file", name, "out", out, "bytes", len(data))
	return true
}
