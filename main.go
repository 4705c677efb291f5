// Command randio generates, dumps and verifies deterministic pseudorandom data.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/randio/internal/commands"
)

// version is set at build time.
var version = "unknown"

func main() {
	if err := commands.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		os.Exit(1)
	}
}
