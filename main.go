// The main package for the bookmeta executable.
package main

import (
	"github.com/mwiatrak/bookmeta/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
