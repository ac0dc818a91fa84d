// Command dictforge is the data dictionary authoring tool.
package main

import (
	"os"

	"github.com/forgeworks-labs/dictforge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
