// Package main is the entry point for the priceboard server.
package main

import (
	"os"

	"github.com/ovbilous/priceboard/cmd/priceboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
