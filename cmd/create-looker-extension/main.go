// @MX:ANCHOR: [AUTO] main is the entry point of the create-looker-extension binary; any error exits 1
// @MX:REASON: the only entry point of the executable, it delegates to the CLI
package main

import (
	"os"

	"github.com/looker-open-source/create-looker-extension/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
