package main

import (
	"os"

	"github.com/naturelab/lifelist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
