package main

import (
	"os"

	"github.com/sfujino/vidiary/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
