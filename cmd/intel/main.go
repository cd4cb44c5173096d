// cmd/intel/main.go
package main

import (
	"fmt"
	"os"

	"sales-hunter-workers/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "intel:", err)
		os.Exit(1)
	}
}
