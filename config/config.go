package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

// Version of the tool, set by ldflags
var Version = "dev"

const envPrefix = "thumbcache"

// Settings from environment, THUMBCACHE_*
type Settings struct {
	Output      string `envconfig:"OUTPUT" default:"out.bmp"`
	Size        string `envconfig:"SIZE" default:"96"`
	Quality     int    `envconfig:"QUALITY" default:"85"`
	Format      string `envconfig:"FORMAT" default:"jpeg"`
	Fallback    bool   `envconfig:"FALLBACK"`     // allow full render when no thumbnail
	NativeDepth bool   `envconfig:"NATIVE_DEPTH"` // keep source bit depth when 16/24/32
	BiggerOK    bool   `envconfig:"BIGGER_OK"`
	Develop     bool   `envconfig:"DEVELOP"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
}

// Current settings loaded at init
var Current Settings

func init() {
	if err := Load(); err != nil {
		log.Printf("load config fail: %s", err)
	}
}

// Load reads the environment into Current
func Load() error {
	var s Settings
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return err
	}
	Current = s
	return nil
}

// InDevelop ...
func InDevelop() bool {
	return Current.Develop
}
