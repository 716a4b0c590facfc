package main

import (
	"os"

	"github.com/pianorhythm/changelog-publisher/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
