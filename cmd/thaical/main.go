// Package main is the thaical command line tool.
package main

import (
	"os"

	"github.com/zapponejosh/thai-calendar-api/cmd/thaical/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
