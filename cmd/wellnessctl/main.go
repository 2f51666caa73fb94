package main

import (
	"os"

	"github.com/blaisecz/wellness-forecast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
