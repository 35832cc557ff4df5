package main

import (
	"github.com/go-imsto/thumbcache/cmd"
)

func main() {
	cmd.Main()
}
