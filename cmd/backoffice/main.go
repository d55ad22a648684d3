package main

import (
	"fmt"
	"os"

	"github.com/arianatravel/backoffice/cmd/backoffice/cli"
)

// Set via -ldflags at build time
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
