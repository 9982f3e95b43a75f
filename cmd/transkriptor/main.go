package main

import (
	"os"

	"github.com/msto63/transkriptor/cmd/transkriptor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
