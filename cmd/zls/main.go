// Command zls is the language server binary.
package main

import (
	"fmt"
	"os"

	"github.com/lang-tools/zls-core/cmd/zls/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
