package main

import (
	"os"

	"fintrack/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
