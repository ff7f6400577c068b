package main

import (
	"os"

	"nepdate/services/nepdate-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
