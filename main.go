// Command scanner runs the token security scanner: as a long-lived HTTP API
// daemon by default, or as a one-shot CLI scan with -scan <mint>.
// Equivalent to ./cmd/scannerd.
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
