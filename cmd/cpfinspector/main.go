package main

import (
	"fmt"
	"os"

	"github.com/cpfinspector/cpfinspector/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
