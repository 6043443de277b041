// main is the entry point for the sitegrade CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sitegrade/sitegrade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
