// Command bcctl queries Business Central entities from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/erp/bcadapter/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
