package cmd

import (
	"github.com/getsentry/raven-go"

	"github.com/go-imsto/thumbcache/config"
)

var (
	packagePrefixes = []string{"github.com/go-imsto"}
	reportEnabled   bool
)

func setupReport(dsn string) {
	if dsn == "" {
		return
	}
	if err := raven.SetDSN(dsn); err != nil {
		logger().Warnw("set sentry dsn fail", "err", err)
		return
	}
	raven.SetRelease(config.Version)
	reportEnabled = true
}

// reportError sends err to sentry and waits, the process is about to exit
func reportError(err error, tags map[string]string) {
	if !reportEnabled || err == nil {
		return
	}
	packet := raven.NewPacket(err.Error(),
		raven.NewException(err, raven.NewStacktrace(1, 3, packagePrefixes)))

	_, ch := raven.Capture(packet, tags)
	if ch != nil {
		if e := <-ch; e != nil {
			logger().Infow("report fail", "err", e)
		}
	}
}
