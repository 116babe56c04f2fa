// Command scannerd runs the token security scanner daemon.
// Usage: scannerd [-env file] [-listen addr] [-scan mint]
package main

import (
	"fmt"
	"os"

	"github.com/cryptoEnthu14/ThunderLaunch-sub000/internal/app"
)

func main() {
	if err := app.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
