package main

import (
	"github.com/robotalks/tts.go/pkg/cli/sh"
	"github.com/robotalks/tts.go/pkg/config"
)

var flags *config.Flags

func init() {
	flags = config.SetupFlags(nil)
}

func main() {
	sh.Main(flags)
}
