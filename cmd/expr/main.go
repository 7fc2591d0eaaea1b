package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	root := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	if err := root.Execute(); err != nil {
		msg := err.Error()
		if !color.NoColor {
			msg = red(msg)
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}
