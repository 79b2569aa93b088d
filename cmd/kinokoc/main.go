// Command kinokoc tokenizes, parses and checks kinoko source files.
package main

import (
	"errors"
	"os"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line args and returns the exit code.
func run(args []string) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			a.reporter(root).Report("", err)
		}
		return 1
	}
	return 0
}
