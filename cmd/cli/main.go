package main

import (
	"fmt"
	"os"

	_ "github.com/crucial707/watchlist/cmd/cli/admin"
	_ "github.com/crucial707/watchlist/cmd/cli/database"
	_ "github.com/crucial707/watchlist/cmd/cli/movies"
	"github.com/crucial707/watchlist/cmd/cli/root"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
