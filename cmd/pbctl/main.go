// Package main is the entry point for the pbctl CLI client.
package main

import "github.com/ovbilous/priceboard/cmd/pbctl/cmd"

func main() {
	cmd.Execute()
}
