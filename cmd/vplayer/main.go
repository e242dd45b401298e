package main

import (
	"os"

	"github.com/Raflos10/video-player/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
