package main

import (
	"os"

	"github.com/21R01A7263/docGPT/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
