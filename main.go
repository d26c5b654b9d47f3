package main

import (
	"os"

	"github.com/example/growthbot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
