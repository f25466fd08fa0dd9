package main

import (
	"os"

	"go-mindfit/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
