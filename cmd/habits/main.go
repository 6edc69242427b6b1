package main

import (
	"os"

	"github.com/mnogodumalon/habits/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
